package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/domainfolio/backend/internal/api/handlers"
	"github.com/domainfolio/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	domainHandler *handlers.DomainHandler,
	transactionHandler *handlers.TransactionHandler,
	reportHandler *handlers.ReportHandler,
	feeHandler *handlers.FeeHandler,
	hub *Hub,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Domain endpoints
	api.HandleFunc("/domains", domainHandler.List).Methods("GET")
	api.HandleFunc("/domains", domainHandler.Create).Methods("POST")
	api.HandleFunc("/domains/{id}", domainHandler.Get).Methods("GET")
	api.HandleFunc("/domains/{id}", domainHandler.Update).Methods("PUT")
	api.HandleFunc("/domains/{id}", domainHandler.Delete).Methods("DELETE")
	api.HandleFunc("/domains/{id}/transactions", transactionHandler.ListByDomain).Methods("GET")

	// Transaction endpoints
	api.HandleFunc("/transactions", transactionHandler.List).Methods("GET")
	api.HandleFunc("/transactions", transactionHandler.Create).Methods("POST")
	api.HandleFunc("/transactions/{id}", transactionHandler.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}", transactionHandler.Update).Methods("PUT")
	api.HandleFunc("/transactions/{id}", transactionHandler.Delete).Methods("DELETE")

	// Report endpoints
	api.HandleFunc("/reports/portfolio", reportHandler.GetPortfolio).Methods("GET")
	api.HandleFunc("/reports/performance", reportHandler.GetPerformance).Methods("GET")
	api.HandleFunc("/reports/monthly", reportHandler.GetMonthlyRevenue).Methods("GET")

	// Fee quote endpoints
	api.HandleFunc("/fees/quote", feeHandler.Quote).Methods("POST")
	api.HandleFunc("/fees/paid", feeHandler.PaidToDate).Methods("POST")

	// Live portfolio updates
	r.HandleFunc("/ws/portfolio", hub.ServeWS)

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "domainfolio-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
