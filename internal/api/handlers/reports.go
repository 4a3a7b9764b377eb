package handlers

import (
	"net/http"

	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/pkg/logger"
)

// ReportHandler serves portfolio analytics endpoints.
type ReportHandler struct {
	service *reports.Service
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *reports.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: log}
}

// GetPortfolio returns the full portfolio report
// GET /api/reports/portfolio
func (h *ReportHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.PortfolioReport(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build portfolio report")
		respondError(w, http.StatusInternalServerError, "Failed to build portfolio report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetPerformance returns per-domain performance rows
// GET /api/reports/performance
func (h *ReportHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.service.Performances(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build performance report")
		respondError(w, http.StatusInternalServerError, "Failed to build performance report")
		return
	}
	respondJSON(w, http.StatusOK, perf)
}

// GetMonthlyRevenue returns the trailing monthly revenue series
// GET /api/reports/monthly
func (h *ReportHandler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.MonthlyRevenue(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build monthly revenue series")
		respondError(w, http.StatusInternalServerError, "Failed to build monthly revenue series")
		return
	}
	respondJSON(w, http.StatusOK, series)
}
