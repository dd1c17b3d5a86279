package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/apex-supplements/store-api/internal/repository"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog repository.CatalogRepository, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Catalog   string    `json:"catalog"`
	Products  int       `json:"products"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ServeHTTP handles health check requests
// The service cannot validate carts without its catalog, so an unreadable
// catalog makes it unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Catalog:   "ok",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}
	status := http.StatusOK

	catalog, err := h.catalog.Load(r.Context())
	if err != nil {
		h.logger.Error("health check: catalog unavailable", "error", err)
		response.Status = "unhealthy"
		response.Catalog = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		response.Products = len(catalog.Products)
	}

	WriteJSON(w, status, response, h.logger)
}
