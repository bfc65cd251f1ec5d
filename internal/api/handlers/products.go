package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.products.List(r.Context()))
}

// Refresh handles POST /api/products/refresh. It regenerates the catalog
// against the latest market snapshot and returns the new product list.
func (h *ProductHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.products.RefreshCatalog(r.Context()))
}
