package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/domainfolio/backend/internal/contracts"
	"github.com/domainfolio/backend/pkg/logger"
)

// Hub pushes refreshed portfolio metrics to connected dashboard clients.
// Handlers call Publish after every mutation; clients only listen.
type Hub struct {
	reports  ReportPublisher
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// ReportPublisher supplies the payload pushed after mutations.
type ReportPublisher interface {
	PortfolioReport(ctx context.Context) (*contracts.PortfolioReport, error)
}

// NewHub creates a new websocket hub
func NewHub(reports ReportPublisher, log *logger.Logger) *Hub {
	return &Hub{
		reports: reports,
		logger:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served from another origin in development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeWS upgrades the connection and holds it open until the client
// disconnects.
// GET /ws/portfolio
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", count).Debug("WebSocket client connected")

	// Drain reads; the read loop ends when the client goes away
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish rebuilds the portfolio report and pushes it to every client.
// Called after domain/transaction mutations; failures are logged, never
// surfaced to the mutating request.
func (h *Hub) Publish(ctx context.Context) {
	h.mu.Lock()
	count := len(h.clients)
	h.mu.Unlock()
	if count == 0 {
		return
	}

	report, err := h.reports.PortfolioReport(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to build report for broadcast")
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to marshal report for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
}
