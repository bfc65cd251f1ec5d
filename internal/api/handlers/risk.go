package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// RiskHandler handles risk assessment HTTP requests
type RiskHandler struct {
	risk *service.RiskService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(risk *service.RiskService) *RiskHandler {
	return &RiskHandler{risk: risk}
}

// Assess handles GET /api/risk-assessment/{customerId}.
func (h *RiskHandler) Assess(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	assessment, err := h.risk.Assess(r.Context(), customerID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to assess risk", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}
