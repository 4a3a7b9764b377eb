package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/domainfolio/backend/internal/fees"
	"github.com/domainfolio/backend/pkg/logger"
)

// FeeHandler serves platform fee quote endpoints.
type FeeHandler struct {
	logger *logger.Logger
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(log *logger.Logger) *FeeHandler {
	return &FeeHandler{logger: log}
}

// Quote computes the customer total over the full contract
// POST /api/fees/quote
func (h *FeeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, fees.CustomerTotal)
}

// PaidToDate computes fees on installments paid so far
// POST /api/fees/paid
func (h *FeeHandler) PaidToDate(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, fees.PaidToDate)
}

func (h *FeeHandler) calculate(w http.ResponseWriter, r *http.Request, calc func(fees.Params) (*fees.Result, error)) {
	var params fees.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := calc(params)
	if err != nil {
		var unsupported *fees.UnsupportedFeeTypeError
		if errors.As(err, &unsupported) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to calculate fees")
		respondError(w, http.StatusInternalServerError, "Failed to calculate fees")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
