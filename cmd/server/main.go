package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/catalog"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/modelstore"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/scheduler"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/upstream"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.With().Str("service", "investment-advisor").Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Load fitted model parameters, training from scratch on first start
	store, err := modelstore.Open(cfg.ModelStore.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ModelStore.Path).Msg("failed to open model store")
	}
	defer store.Close()

	predictor, err := loadOrTrain(store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize predictive model")
	}

	// Memoization cache; the engine degrades gracefully when Redis is down
	memo := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	defer memo.Close()

	// Upstream service clients
	customers := upstream.NewCustomerClient(cfg.Upstream.CustomerServiceURL, cfg.Upstream.Timeout)
	assets := upstream.NewAssetClient(cfg.Upstream.AssetServiceURL, cfg.Upstream.Timeout)
	markets := upstream.NewMarketClient(cfg.Upstream.MarketDataServiceURL, cfg.Upstream.Timeout)

	// Product catalog
	generator := catalog.NewGenerator(catalog.DefaultTemplates(), cfg.Heuristics.Catalog, logger)

	// Create services
	marketService := service.NewMarketService(markets, memo, logger)
	recommendationService := service.NewRecommendationService(
		customers,
		assets,
		marketService,
		predictor,
		generator,
		memo,
		cfg.Heuristics.Scoring,
		logger,
	)
	portfolioService := service.NewPortfolioService(
		customers,
		assets,
		memo,
		cfg.Heuristics.Volatility,
		logger,
	)
	riskService := service.NewRiskService(
		customers,
		assets,
		marketService,
		predictor,
		memo,
		cfg.Heuristics.Stress,
		logger,
	)
	productService := service.NewProductService(generator, marketService, logger)

	// Periodic catalog refresh
	refresher, err := scheduler.New(productService, cfg.Catalog.RefreshCron, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("cron", cfg.Catalog.RefreshCron).Msg("invalid catalog refresh schedule")
	}
	refresher.Start()
	defer refresher.Stop()

	// Create router
	router := api.NewRouter(api.Dependencies{
		Recommendations: recommendationService,
		Portfolios:      portfolioService,
		Risk:            riskService,
		Products:        productService,
		Cache:           memo,
		Catalog:         generator,
		ModelLoaded:     true,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

// loadOrTrain restores fitted model parameters from the store, training and
// persisting a fresh model when none exist yet. Training is deterministic so
// a lost store reproduces the same model.
func loadOrTrain(store *modelstore.Store, logger zerolog.Logger) (*ml.Predictor, error) {
	params, err := store.LoadParams()
	if err == nil {
		return ml.NewPredictorFromParams(params, logger)
	}
	if !errors.Is(err, apperrors.ErrModelNotFound) {
		return nil, err
	}

	logger.Info().Msg("no stored model parameters, training")
	predictor, err := ml.Train(ml.DefaultTrainingSeed, ml.DefaultTrainingSamples, logger)
	if err != nil {
		return nil, err
	}
	if err := store.SaveParams(predictor.Params()); err != nil {
		return nil, err
	}
	return predictor, nil
}
