package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/handlers"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/testutil"
)

func testCatalog() *testutil.StubCatalog {
	return &testutil.StubCatalog{Items: []model.InvestmentProduct{
		testutil.Product("SAV01", model.AssetSavings, model.RiskLow, 7.5, 1_000_000),
		testutil.Product("FND01", model.AssetFund, model.RiskMedium, 12, 500_000),
	}}
}

func newTestRecommendationHandler(customers service.CustomerFetcher) *handlers.RecommendationHandler {
	markets := service.NewMarketService(testutil.FixedMarket(nil), nil, zerolog.Nop())
	svc := service.NewRecommendationService(
		customers,
		testutil.FixedAssets(nil),
		markets,
		&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 5, ExpectedReturn: 8}},
		testCatalog(),
		nil,
		config.DefaultHeuristics().Scoring,
		zerolog.Nop(),
	)
	return handlers.NewRecommendationHandler(svc)
}

// TestRecommendationHandler_Generate tests the POST /api/recommendations
// handler.
//
// WHY: The handler owns the HTTP status mapping: malformed or invalid input
// is 400, an unknown customer is 404, and a degraded-but-successful
// generation is still 200.
func TestRecommendationHandler_Generate(t *testing.T) {
	customerID := testutil.MakeID()

	t.Run("returns recommendations for a known customer", func(t *testing.T) {
		handler := newTestRecommendationHandler(testutil.FixedCustomers(testutil.NewProfile().Build()))

		body := `{"customer_id": "` + customerID + `", "investment_amount": 2000000}`
		req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Generate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}

		var result service.RecommendationResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if result.CustomerID != customerID {
			t.Errorf("CustomerID = %q, want %q", result.CustomerID, customerID)
		}
		if len(result.Recommendations) == 0 {
			t.Error("Expected at least one recommendation")
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler := newTestRecommendationHandler(testutil.FixedCustomers(testutil.NewProfile().Build()))

		req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader("{broken"))
		rec := httptest.NewRecorder()

		handler.Generate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects a non-UUID customer ID", func(t *testing.T) {
		handler := newTestRecommendationHandler(testutil.FixedCustomers(testutil.NewProfile().Build()))

		req := httptest.NewRequest(http.MethodPost, "/api/recommendations",
			strings.NewReader(`{"customer_id": "not-a-uuid"}`))
		rec := httptest.NewRecorder()

		handler.Generate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects a negative investment amount", func(t *testing.T) {
		handler := newTestRecommendationHandler(testutil.FixedCustomers(testutil.NewProfile().Build()))

		body := `{"customer_id": "` + customerID + `", "investment_amount": -100}`
		req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Generate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("maps an unknown customer to 404", func(t *testing.T) {
		handler := newTestRecommendationHandler(&testutil.StubCustomers{
			FetchProfileFunc: func(ctx context.Context, id string) (*model.CustomerProfile, error) {
				return nil, apperrors.ErrCustomerNotFound
			},
		})

		body := `{"customer_id": "` + customerID + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Generate(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", rec.Code)
		}
	})
}
