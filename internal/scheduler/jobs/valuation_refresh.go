package jobs

import (
	"context"

	"github.com/domainfolio/backend/internal/contracts"
	"github.com/domainfolio/backend/internal/domains"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/internal/valuation"
	"github.com/domainfolio/backend/pkg/logger"
)

// ValuationRefreshJob re-fetches estimated values for active domains.
// A failed appraisal for one domain never blocks the rest.
type ValuationRefreshJob struct {
	repo      *domains.Repository
	valuation *valuation.Client
	reports   *reports.Service
	logger    *logger.Logger
}

// NewValuationRefreshJob creates a new valuation refresh job
func NewValuationRefreshJob(
	repo *domains.Repository,
	valuationClient *valuation.Client,
	reportsSvc *reports.Service,
	log *logger.Logger,
) *ValuationRefreshJob {
	return &ValuationRefreshJob{
		repo:      repo,
		valuation: valuationClient,
		reports:   reportsSvc,
		logger:    log,
	}
}

// Name returns the job name
func (j *ValuationRefreshJob) Name() string {
	return "valuation_refresh"
}

// Schedule returns the cron schedule (every day at 7 AM, after expiry check)
func (j *ValuationRefreshJob) Schedule() string {
	return "0 0 7 * * *"
}

// Run executes the valuation refresh
func (j *ValuationRefreshJob) Run(ctx context.Context) error {
	if !j.valuation.Enabled() {
		j.logger.Debug("Valuation provider not configured, skipping refresh")
		return nil
	}

	active, err := j.repo.List(ctx, contracts.StatusActive)
	if err != nil {
		return err
	}

	var updated, failed int
	for i := range active {
		d := &active[i]

		value, err := j.valuation.EstimatedValue(ctx, d.Name)
		if err != nil {
			failed++
			j.logger.WithError(err).WithField("domain", d.Name).Warn("Appraisal fetch failed")
			continue
		}

		if err := j.repo.UpdateEstimatedValue(ctx, d.ID, value); err != nil {
			failed++
			j.logger.WithError(err).WithField("domain", d.Name).Warn("Appraisal update failed")
			continue
		}
		updated++
	}

	if updated > 0 {
		j.reports.Invalidate(ctx)
	}

	j.logger.WithFields(map[string]interface{}{
		"updated": updated,
		"failed":  failed,
	}).Info("Valuation refresh completed")

	return nil
}
