package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/domainfolio/backend/internal/contracts"
	"github.com/domainfolio/backend/internal/domains"
	"github.com/domainfolio/backend/internal/reports"
	"github.com/domainfolio/backend/pkg/logger"
)

// Broadcaster pushes refreshed metrics to live dashboard clients.
// Implemented by the api websocket hub; handlers only fire it.
type Broadcaster interface {
	Publish(ctx context.Context)
}

// DomainHandler handles domain CRUD endpoints.
type DomainHandler struct {
	repo        *domains.Repository
	reports     *reports.Service
	broadcaster Broadcaster
	logger      *logger.Logger
}

// NewDomainHandler creates a new domain handler
func NewDomainHandler(repo *domains.Repository, reportsSvc *reports.Service, broadcaster Broadcaster, log *logger.Logger) *DomainHandler {
	return &DomainHandler{
		repo:        repo,
		reports:     reportsSvc,
		broadcaster: broadcaster,
		logger:      log,
	}
}

// List returns all domains, optionally filtered by status
// GET /api/domains?status=active
func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := contracts.DomainStatus(r.URL.Query().Get("status"))

	result, err := h.repo.List(ctx, status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list domains")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve domains")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Get returns one domain
// GET /api/domains/{id}
func (h *DomainHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	domain, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domains.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Domain not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get domain")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve domain")
		return
	}

	respondJSON(w, http.StatusOK, domain)
}

// Create inserts a new domain
// POST /api/domains
func (h *DomainHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var domain contracts.Domain
	if err := json.NewDecoder(r.Body).Decode(&domain); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if domain.Name == "" {
		respondError(w, http.StatusBadRequest, "Domain name is required")
		return
	}
	if domain.ID == "" {
		domain.ID = newID()
	}
	if domain.Status == "" {
		domain.Status = contracts.StatusActive
	}

	if err := h.repo.Create(ctx, &domain); err != nil {
		h.logger.WithError(err).Error("Failed to create domain")
		respondError(w, http.StatusInternalServerError, "Failed to create domain")
		return
	}

	h.afterMutation(ctx)
	respondJSON(w, http.StatusCreated, domain)
}

// Update rewrites an existing domain
// PUT /api/domains/{id}
func (h *DomainHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var domain contracts.Domain
	if err := json.NewDecoder(r.Body).Decode(&domain); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	domain.ID = id

	if err := h.repo.Update(ctx, &domain); err != nil {
		if errors.Is(err, domains.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Domain not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update domain")
		respondError(w, http.StatusInternalServerError, "Failed to update domain")
		return
	}

	h.afterMutation(ctx)
	respondJSON(w, http.StatusOK, domain)
}

// Delete removes a domain and its transactions
// DELETE /api/domains/{id}
func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domains.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Domain not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete domain")
		respondError(w, http.StatusInternalServerError, "Failed to delete domain")
		return
	}

	h.afterMutation(ctx)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// afterMutation drops the cached report and notifies live clients.
func (h *DomainHandler) afterMutation(ctx context.Context) {
	h.reports.Invalidate(ctx)
	go h.broadcaster.Publish(context.Background())
}

// newID generates a random 16-byte hex identifier.
func newID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
