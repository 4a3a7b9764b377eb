package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/domainfolio/backend/internal/contracts"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/internal/transactions"
	"github.com/domainfolio/backend/pkg/logger"
)

// TransactionHandler handles transaction CRUD endpoints.
type TransactionHandler struct {
	repo        *transactions.Repository
	reports     *reports.Service
	broadcaster Broadcaster
	logger      *logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(repo *transactions.Repository, reportsSvc *reports.Service, broadcaster Broadcaster, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		repo:        repo,
		reports:     reportsSvc,
		broadcaster: broadcaster,
		logger:      log,
	}
}

// List returns transactions, optionally bounded by a period
// GET /api/transactions?from=2025-01-01&to=2025-12-31
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr != "" || toStr != "" {
		from, to, err := parsePeriod(fromStr, toStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		result, err := h.repo.ListByPeriod(ctx, from, to)
		if err != nil {
			h.logger.WithError(err).Error("Failed to list transactions by period")
			respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.repo.List(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list transactions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListByDomain returns all transactions attached to one domain
// GET /api/domains/{id}/transactions
func (h *TransactionHandler) ListByDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	domainID := mux.Vars(r)["id"]

	result, err := h.repo.ListByDomain(ctx, domainID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list domain transactions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Get returns one transaction
// GET /api/transactions/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	tx, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get transaction")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve transaction")
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// Create inserts a new transaction
// POST /api/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var tx contracts.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if tx.DomainID == "" {
		respondError(w, http.StatusBadRequest, "domain_id is required")
		return
	}
	if tx.Type == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}
	if tx.ID == "" {
		tx.ID = newID()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}

	if err := h.repo.Create(ctx, &tx); err != nil {
		h.logger.WithError(err).Error("Failed to create transaction")
		respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.afterMutation(r)
	respondJSON(w, http.StatusCreated, tx)
}

// Update rewrites an existing transaction
// PUT /api/transactions/{id}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var tx contracts.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tx.ID = id

	if err := h.repo.Update(ctx, &tx); err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update transaction")
		respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	h.afterMutation(r)
	respondJSON(w, http.StatusOK, tx)
}

// Delete removes a transaction
// DELETE /api/transactions/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete transaction")
		respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.afterMutation(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (h *TransactionHandler) afterMutation(r *http.Request) {
	h.reports.Invalidate(r.Context())
	go h.broadcaster.Publish(context.Background())
}

// parsePeriod turns from/to query strings into a date range.
// Missing bounds default to the epoch and the far future.
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, errors.New("invalid from date, expected YYYY-MM-DD")
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
