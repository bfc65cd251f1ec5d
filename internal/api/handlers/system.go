package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	cache       *cache.Cache
	catalog     service.ProductSource
	modelLoaded bool
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(c *cache.Cache, catalog service.ProductSource, modelLoaded bool) *SystemHandler {
	return &SystemHandler{cache: c, catalog: catalog, modelLoaded: modelLoaded}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Cache       string `json:"cache"`
	ModelLoaded bool   `json:"model_loaded"`
	CatalogSize int    `json:"catalog_size"`
}

// Health handles GET /api/system/health.
//
// The service degrades rather than fails, so a cold cache reports
// "degraded" while the endpoint still answers 200.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "healthy",
		Cache:       "connected",
		ModelLoaded: h.modelLoaded,
	}

	if h.catalog != nil {
		resp.CatalogSize = h.catalog.Size()
	}

	if !h.cache.Healthy(r.Context()) {
		resp.Status = "degraded"
		resp.Cache = "unavailable"
	}

	respondJSON(w, http.StatusOK, resp)
}
