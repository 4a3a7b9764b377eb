package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domainfolio/backend/internal/domains"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/internal/transactions"
	"github.com/domainfolio/backend/pkg/config"
	"github.com/domainfolio/backend/pkg/database"
	"github.com/domainfolio/backend/pkg/logger"
	"github.com/domainfolio/backend/pkg/redis"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the portfolio report",
	Long: `Builds the portfolio report once and prints it as JSON.

Useful for cron-driven exports or quick inspection without
starting the API server.

Example:
  go run ./cmd/folio report
  go run ./cmd/folio report --performance`,
	RunE: runReport,
}

var (
	reportPerformance bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().BoolVar(&reportPerformance, "performance", false, "print per-domain performance instead of the portfolio summary")
}

func runReport(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// 4. Connect to redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "folio")

	// 5. Build the report
	domainRepo := domains.NewRepository(db.Pool)
	txRepo := transactions.NewRepository(db.Pool)
	reportService := reports.NewService(domainRepo, txRepo, cache, log, cfg.Report.RiskFreeRate, cfg.Report.CacheTTL)

	ctx := context.Background()

	var out interface{}
	if reportPerformance {
		out, err = reportService.Performances(ctx)
	} else {
		out, err = reportService.PortfolioReport(ctx)
	}
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
