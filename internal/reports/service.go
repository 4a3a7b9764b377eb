// Package reports renders portfolio reports: it fetches the materialized
// domain and transaction slices, runs the metrics engine over them, and
// caches the result so dashboard polling does not hit the engine (or the
// database) on every request.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/domainfolio/backend/internal/contracts"
	"github.com/domainfolio/backend/internal/metrics"
	"github.com/domainfolio/backend/pkg/logger"
	"github.com/domainfolio/backend/pkg/redis"
)

const portfolioCacheKey = "portfolio_report"

// DomainSource supplies the domain slice the engine reads.
type DomainSource interface {
	List(ctx context.Context, status contracts.DomainStatus) ([]contracts.Domain, error)
}

// TransactionSource supplies the transaction slice the engine reads.
type TransactionSource interface {
	List(ctx context.Context) ([]contracts.Transaction, error)
}

// Service produces portfolio reports.
type Service struct {
	domains      DomainSource
	transactions TransactionSource
	cache        *redis.Cache
	logger       *logger.Logger

	riskFreeRate float64
	cacheTTL     time.Duration

	now func() time.Time
}

// NewService creates a new report service.
func NewService(
	domains DomainSource,
	transactions TransactionSource,
	cache *redis.Cache,
	log *logger.Logger,
	riskFreeRate float64,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		domains:      domains,
		transactions: transactions,
		cache:        cache,
		logger:       log,
		riskFreeRate: riskFreeRate,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// PortfolioReport returns the full portfolio report, from cache when fresh.
func (s *Service) PortfolioReport(ctx context.Context) (*contracts.PortfolioReport, error) {
	var report contracts.PortfolioReport

	err := s.cache.GetOrSet(ctx, portfolioCacheKey, &report, s.cacheTTL, func() (interface{}, error) {
		return s.build(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// Performances returns the per-domain profitability records. Not cached:
// the per-domain view is requested far less often than the headline report.
func (s *Service) Performances(ctx context.Context) ([]contracts.DomainPerformance, error) {
	domains, transactions, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return metrics.DomainPerformances(domains, transactions), nil
}

// MonthlyRevenue returns the trailing revenue series on its own.
func (s *Service) MonthlyRevenue(ctx context.Context) ([]contracts.MonthlyRevenuePoint, error) {
	transactions, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return metrics.MonthlyRevenue(transactions, s.now()), nil
}

// Invalidate drops the cached report. Called after every domain or
// transaction mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, portfolioCacheKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate report cache")
	}
}

func (s *Service) build(ctx context.Context) (*contracts.PortfolioReport, error) {
	domains, transactions, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	report := metrics.CalculatePortfolio(domains, transactions, s.riskFreeRate, s.now())

	s.logger.WithFields(map[string]interface{}{
		"domains":      report.DomainCount,
		"total_profit": report.Basic.TotalProfit,
		"risk_level":   report.Advanced.RiskLevel,
	}).Debug("Portfolio report built")

	return report, nil
}

func (s *Service) fetch(ctx context.Context) ([]contracts.Domain, []contracts.Transaction, error) {
	domains, err := s.domains.List(ctx, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load domains: %w", err)
	}

	transactions, err := s.transactions.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return domains, transactions, nil
}
