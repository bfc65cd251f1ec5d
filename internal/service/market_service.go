package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// MarketService fetches the market snapshot with short-lived memoization.
// Market data is advisory: every failure degrades to a nil snapshot, which
// downstream consumers treat as NEUTRAL sentiment with default proxy values.
type MarketService struct {
	client SnapshotFetcher
	cache  *cache.Cache
	log    zerolog.Logger
}

// NewMarketService creates a MarketService. The cache may be nil.
func NewMarketService(client SnapshotFetcher, memo *cache.Cache, log zerolog.Logger) *MarketService {
	return &MarketService{
		client: client,
		cache:  memo,
		log:    log.With().Str("component", "market").Logger(),
	}
}

// Snapshot returns the current market snapshot or nil when market data is
// unavailable. It never returns an error; the engine must keep working
// without market context.
func (s *MarketService) Snapshot(ctx context.Context) *model.MarketSnapshot {
	key := cache.Key("market", "snapshot")

	var cached model.MarketSnapshot
	if s.cache.Get(ctx, key, &cached) {
		return &cached
	}

	snap, err := s.client.FetchSnapshot(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("market snapshot unavailable, continuing without market data")
		return nil
	}

	s.cache.Set(ctx, key, snap, cache.MarketSnapshotTTL)
	return snap
}
