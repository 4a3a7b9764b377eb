// Package valuation fetches externally appraised domain values. The cache
// and rate limiter are explicitly constructed and injected here, not held
// as package globals.
package valuation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/domainfolio/backend/pkg/config"
	"github.com/domainfolio/backend/pkg/httputil"
	"github.com/domainfolio/backend/pkg/logger"
	"github.com/domainfolio/backend/pkg/redis"
)

// Client fetches appraisal values from the configured valuation provider.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
	cacheTTL   time.Duration
	enabled    bool
}

// NewClient creates a new valuation client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	httpClient.WithRateLimit(cfg.Valuation.RatePerSecond)

	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		baseURL:    cfg.Valuation.BaseURL,
		cacheTTL:   cfg.Valuation.CacheTTL,
		enabled:    cfg.Valuation.Enabled,
	}
}

// Enabled reports whether a valuation provider is configured.
func (c *Client) Enabled() bool {
	return c.enabled
}

// EstimatedValue returns the appraised value for a domain name, consulting
// the cache before fetching.
func (c *Client) EstimatedValue(ctx context.Context, domainName string) (float64, error) {
	if !c.enabled {
		return 0, fmt.Errorf("valuation provider is not configured")
	}

	cacheKey := fmt.Sprintf("appraisal:%s", domainName)

	var value float64
	found, err := c.cache.Get(ctx, cacheKey, &value)
	if err != nil {
		c.logger.WithError(err).Warn("Appraisal cache read failed")
	}
	if found {
		return value, nil
	}

	value, err = c.fetchEstimate(ctx, domainName)
	if err != nil {
		return 0, err
	}

	if err := c.cache.Set(ctx, cacheKey, value, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Appraisal cache write failed")
	}

	return value, nil
}

// fetchEstimate fetches and parses the provider's appraisal page.
func (c *Client) fetchEstimate(ctx context.Context, domainName string) (float64, error) {
	fullURL := fmt.Sprintf("%s/appraise?%s", c.baseURL, url.Values{"domain": {domainName}}.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return 0, fmt.Errorf("appraisal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse appraisal page: %w", err)
	}

	value, ok := parseAppraisal(doc)
	if !ok {
		return 0, fmt.Errorf("no appraisal value found for %s", domainName)
	}

	c.logger.WithFields(map[string]interface{}{
		"domain": domainName,
		"value":  value,
	}).Debug("Appraisal fetched")

	return value, nil
}

// parseAppraisal extracts the appraised value from the provider's markup.
func parseAppraisal(doc *goquery.Document) (float64, bool) {
	var value float64
	var found bool

	doc.Find(".appraisal-value, [data-appraisal]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.AttrOr("data-appraisal", s.Text())
		if v, ok := parseMoney(text); ok {
			value = v
			found = true
			return false
		}
		return true
	})

	return value, found
}

// parseMoney strips currency symbols and thousands separators.
func parseMoney(text string) (float64, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimLeft(cleaned, "$€£ ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
