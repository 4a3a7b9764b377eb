package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/domainfolio/backend/internal/api"
	"github.com/domainfolio/backend/internal/api/handlers"
	"github.com/domainfolio/backend/internal/domains"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/internal/transactions"
	"github.com/domainfolio/backend/pkg/config"
	"github.com/domainfolio/backend/pkg/database"
	"github.com/domainfolio/backend/pkg/logger"
	"github.com/domainfolio/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command:
- Serves domain and transaction CRUD endpoints
- Serves portfolio report endpoints
- Serves installment fee quotes
- Pushes live report updates over websocket

Endpoints:
  GET  /health
  GET  /api/domains
  GET  /api/transactions
  GET  /api/reports/portfolio
  POST /api/fees/quote
  WS   /ws/portfolio

Example:
  go run ./cmd/folio api
  go run ./cmd/folio api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Domainfolio API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to redis (no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "folio")

	// 5. Create repositories
	domainRepo := domains.NewRepository(db.Pool)
	txRepo := transactions.NewRepository(db.Pool)

	// 6. Create report service
	reportService := reports.NewService(domainRepo, txRepo, cache, log, cfg.Report.RiskFreeRate, cfg.Report.CacheTTL)

	// 7. Create websocket hub
	hub := api.NewHub(reportService, log)

	// 8. Create handlers
	domainHandler := handlers.NewDomainHandler(domainRepo, reportService, hub, log)
	transactionHandler := handlers.NewTransactionHandler(txRepo, reportService, hub, log)
	reportHandler := handlers.NewReportHandler(reportService, log)
	feeHandler := handlers.NewFeeHandler(log)

	// 9. Create router
	router := api.NewRouter(domainHandler, transactionHandler, reportHandler, feeHandler, hub, log)

	// 10. Create server
	server := api.New(cfg, log, router)

	// 11. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
