package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/domainfolio/backend/internal/domains"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/internal/scheduler"
	"github.com/domainfolio/backend/internal/scheduler/jobs"
	"github.com/domainfolio/backend/internal/transactions"
	"github.com/domainfolio/backend/internal/valuation"
	"github.com/domainfolio/backend/pkg/config"
	"github.com/domainfolio/backend/pkg/database"
	"github.com/domainfolio/backend/pkg/httputil"
	"github.com/domainfolio/backend/pkg/logger"
	"github.com/domainfolio/backend/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage scheduled jobs",
	Long: `Starts the scheduler daemon or manages jobs.

Registered jobs:
- expiry_check: daily at 6 AM (mark expired domains, flag upcoming renewals)
- valuation_refresh: daily at 7 AM (refresh estimated values for active domains)

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run one job immediately
  status  - show job execution history

Example:
  go run ./cmd/folio scheduler start
  go run ./cmd/folio scheduler run expiry_check`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status [job_name]",
		Short: "Show job execution history",
		Args:  cobra.ExactArgs(1),
		RunE:  showStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Domainfolio Scheduler ===")

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	fmt.Println("\nScheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job started (running in background)")
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	history, err := sched.GetJobHistory(jobName)
	if err != nil {
		return fmt.Errorf("get job history: %w", err)
	}

	fmt.Printf("Job: %s\n\n", jobName)
	for _, result := range history.Results {
		status := "ok"
		if !result.Success {
			status = "failed: " + result.Error
		}
		fmt.Printf("  %s  %-8s  %s\n",
			result.StartTime.Format("2006-01-02 15:04:05"),
			result.Duration.Round(0),
			status,
		)
	}

	return nil
}

func initScheduler() (*scheduler.Scheduler, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(redisClient, "folio")

	// 5. Create HTTP client
	httpClient := httputil.New(log)

	// 6. Create repositories and services
	domainRepo := domains.NewRepository(db.Pool)
	txRepo := transactions.NewRepository(db.Pool)
	reportService := reports.NewService(domainRepo, txRepo, cache, log, cfg.Report.RiskFreeRate, cfg.Report.CacheTTL)
	valuationClient := valuation.NewClient(cfg, httpClient, cache, log)

	// 7. Create scheduler
	sched := scheduler.New(log)

	// 8. Register jobs
	sched.AddJob(jobs.NewExpiryCheckJob(domainRepo, reportService, log))
	sched.AddJob(jobs.NewValuationRefreshJob(domainRepo, valuationClient, reportService, log))

	return sched, nil
}
