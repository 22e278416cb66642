// Package health provides health check and index endpoint handlers.
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreStatus reports whether a store connection has been established.
type StoreStatus interface {
	Connected() bool
}

// Handler handles health check requests.
type Handler struct {
	store       StoreStatus
	environment string
	version     string
	now         func() time.Time
}

// New creates a new health handler instance.
func New(store StoreStatus, environment, version string) *Handler {
	return &Handler{
		store:       store,
		environment: environment,
		version:     version,
		now:         time.Now,
	}
}

// Response represents health check response.
type Response struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	Store       string    `json:"store"`
}

// IndexResponse describes the service and where its endpoints live.
type IndexResponse struct {
	Message  string `json:"message"`
	Health   string `json:"health"`
	Requests string `json:"requests"`
}

// Check handles GET /health. It never touches the store, so it stays fast
// while a lazy connection has not been made yet.
func (h *Handler) Check(c *gin.Context) {
	store := "disconnected"
	if h.store != nil && h.store.Connected() {
		store = "connected"
	}

	c.JSON(http.StatusOK, Response{
		Status:      "ok",
		Timestamp:   h.now().UTC(),
		Environment: h.environment,
		Version:     h.version,
		Store:       store,
	})
}

// Index handles GET /.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, IndexResponse{
		Message:  "Team formation requests API",
		Health:   "/health",
		Requests: "/api/requests",
	})
}
