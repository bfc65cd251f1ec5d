package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// RecommendationHandler handles recommendation-related HTTP requests
type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// Generate handles POST /api/recommendations.
//
// The request body names the customer and an optional investment amount.
// A missing customer profile is the only error surfaced as 404; upstream
// degradation is absorbed by the service with documented defaults.
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.recommendations.Generate(r.Context(), req.CustomerID, req.InvestmentAmount)
	if err != nil {
		if errors.Is(err, apperrors.ErrCustomerNotFound) {
			response.RespondError(w, http.StatusNotFound, "customer not found", req.CustomerID)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to generate recommendations", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}
