package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Advisor-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// Dependencies bundles the services the router wires handlers to.
type Dependencies struct {
	Recommendations *service.RecommendationService
	Portfolios      *service.PortfolioService
	Risk            *service.RiskService
	Products        *service.ProductService
	Cache           *cache.Cache
	Catalog         service.ProductSource
	ModelLoaded     bool
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		recommendationHandler := handlers.NewRecommendationHandler(deps.Recommendations)
		r.Post("/recommendations", recommendationHandler.Generate)

		analysisHandler := handlers.NewAnalysisHandler(deps.Portfolios)
		r.With(custommiddleware.ValidateCustomerID).
			Get("/analysis/{customerId}", analysisHandler.Analyze)

		riskHandler := handlers.NewRiskHandler(deps.Risk)
		r.With(custommiddleware.ValidateCustomerID).
			Get("/risk-assessment/{customerId}", riskHandler.Assess)

		r.Route("/products", func(r chi.Router) {
			productHandler := handlers.NewProductHandler(deps.Products)
			r.Get("/", productHandler.List)
			r.Post("/refresh", productHandler.Refresh)
		})

		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.Cache, deps.Catalog, deps.ModelLoaded)
			r.Get("/health", systemHandler.Health)
		})
	})

	return r
}
