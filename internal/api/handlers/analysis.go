package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// AnalysisHandler handles portfolio analysis HTTP requests
type AnalysisHandler struct {
	portfolios *service.PortfolioService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(portfolios *service.PortfolioService) *AnalysisHandler {
	return &AnalysisHandler{portfolios: portfolios}
}

// Analyze handles GET /api/analysis/{customerId}.
//
// Analysis always succeeds for a well-formed customer ID: a customer without
// holdings receives the empty-portfolio analysis rather than an error.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	analysis, err := h.portfolios.Analyze(r.Context(), customerID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to analyze portfolio", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}
