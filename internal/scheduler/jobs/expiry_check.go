package jobs

import (
	"context"
	"time"

	"github.com/domainfolio/backend/internal/domains"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/pkg/logger"
)

// ExpiryCheckJob flips lapsed domains to expired and logs upcoming
// renewals so they surface in the daily digest.
type ExpiryCheckJob struct {
	repo    *domains.Repository
	reports *reports.Service
	logger  *logger.Logger
}

// NewExpiryCheckJob creates a new expiry check job
func NewExpiryCheckJob(repo *domains.Repository, reportsSvc *reports.Service, log *logger.Logger) *ExpiryCheckJob {
	return &ExpiryCheckJob{
		repo:    repo,
		reports: reportsSvc,
		logger:  log,
	}
}

// Name returns the job name
func (j *ExpiryCheckJob) Name() string {
	return "expiry_check"
}

// Schedule returns the cron schedule (every day at 6 AM)
func (j *ExpiryCheckJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run executes the expiry check
func (j *ExpiryCheckJob) Run(ctx context.Context) error {
	now := time.Now()

	expired, err := j.repo.MarkExpired(ctx, now)
	if err != nil {
		return err
	}

	if expired > 0 {
		j.logger.WithField("expired", expired).Info("Domains marked expired")
		j.reports.Invalidate(ctx)
	}

	// Surface renewals due in the next 30 days
	upcoming, err := j.repo.ListExpiring(ctx, now.AddDate(0, 0, 30))
	if err != nil {
		return err
	}

	for i := range upcoming {
		d := &upcoming[i]
		j.logger.WithFields(map[string]interface{}{
			"domain":       d.Name,
			"expiry_date":  d.ExpiryDate.Format("2006-01-02"),
			"renewal_cost": d.RenewalCost,
		}).Warn("Domain renewal due soon")
	}

	return nil
}
