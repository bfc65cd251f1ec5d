package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// Generator builds and caches the product catalog. The catalog is built
// lazily on first access and reused until an explicit Refresh; concurrent
// first access is collapsed to a single build.
type Generator struct {
	templates []Template
	adjust    config.CatalogAdjustments
	newRand   func() *rand.Rand
	log       zerolog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	products []model.InvestmentProduct
	built    bool
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRandSource injects a deterministic random source factory; tests use a
// fixed seed while production defaults to a time-derived one.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(g *Generator) {
		g.newRand = newRand
	}
}

// NewGenerator creates a Generator over the given templates.
func NewGenerator(templates []Template, adjust config.CatalogAdjustments, log zerolog.Logger, opts ...Option) *Generator {
	g := &Generator{
		templates: templates,
		adjust:    adjust,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		log: log.With().Str("component", "catalog").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Products returns the current catalog, building it on first access. The
// snapshot only matters for the build that actually runs; later callers get
// the cached catalog regardless of the snapshot they pass.
func (g *Generator) Products(snap *model.MarketSnapshot) []model.InvestmentProduct {
	g.mu.RLock()
	if g.built {
		defer g.mu.RUnlock()
		return copyProducts(g.products)
	}
	g.mu.RUnlock()

	result, _, _ := g.group.Do("build", func() (interface{}, error) {
		g.mu.RLock()
		if g.built {
			defer g.mu.RUnlock()
			return copyProducts(g.products), nil
		}
		g.mu.RUnlock()
		return g.rebuild(snap), nil
	})
	return result.([]model.InvestmentProduct)
}

// Refresh rebuilds the catalog from the given snapshot and returns it.
func (g *Generator) Refresh(snap *model.MarketSnapshot) []model.InvestmentProduct {
	result, _, _ := g.group.Do("refresh", func() (interface{}, error) {
		return g.rebuild(snap), nil
	})
	return result.([]model.InvestmentProduct)
}

// Size returns the number of products in the current catalog, 0 before the
// first build.
func (g *Generator) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.products)
}

func (g *Generator) rebuild(snap *model.MarketSnapshot) []model.InvestmentProduct {
	rng := g.newRand()
	products := make([]model.InvestmentProduct, 0, len(g.templates)*4)

	for _, t := range g.templates {
		count := 2 + rng.Intn(3)
		for i := 0; i < count; i++ {
			products = append(products, g.generate(t, i, rng, snap))
		}
	}

	g.mu.Lock()
	g.products = products
	g.built = true
	g.mu.Unlock()

	g.log.Info().
		Int("products", len(products)).
		Bool("market_data", snap != nil).
		Msg("rebuilt product catalog")

	return copyProducts(products)
}

func (g *Generator) generate(t Template, idx int, rng *rand.Rand, snap *model.MarketSnapshot) model.InvestmentProduct {
	noise := g.adjust.ReturnNoiseRange
	expectedReturn := t.BaseReturn + (rng.Float64()*2-1)*noise + g.marketAdjustment(t.AssetType, snap)
	expectedReturn = math.Max(0, expectedReturn)

	horizonYears := t.MinHorizonYears
	if t.MaxHorizonYears > t.MinHorizonYears {
		horizonYears += rng.Intn(t.MaxHorizonYears - t.MinHorizonYears + 1)
	}

	scale := g.adjust.MinInvestScaleFloor + rng.Float64()*(g.adjust.MinInvestScaleCeil-g.adjust.MinInvestScaleFloor)
	minInvestment := math.Round(t.MinInvestment * scale)

	var maxInvestment *float64
	if t.MaxInvestment != nil {
		v := *t.MaxInvestment
		maxInvestment = &v
	}

	return model.InvestmentProduct{
		ProductName:          t.Names[idx%len(t.Names)],
		AssetType:            t.AssetType,
		ExpectedReturn:       expectedReturn,
		RiskLevel:            t.RiskLevel,
		InvestmentHorizon:    horizonText(horizonYears),
		MinInvestment:        minInvestment,
		MaxInvestment:        maxInvestment,
		Description:          t.Description,
		Advantages:           t.Advantages,
		Disadvantages:        t.Disadvantages,
		Institution:          t.Institution,
		ProductCode:          fmt.Sprintf("%s%02d", t.CodePrefix, idx+1),
		MarketDataIntegrated: snap != nil,
	}
}

// marketAdjustment shifts the expected return per asset class from the
// snapshot. SAVINGS keys off the forex rate proxy; every other class keys
// off sentiment. A nil snapshot contributes nothing.
func (g *Generator) marketAdjustment(at model.AssetType, snap *model.MarketSnapshot) float64 {
	if snap == nil {
		return 0
	}

	if at == model.AssetSavings {
		rate, ok := snap.ForexProxy()
		if !ok {
			return 0
		}
		switch {
		case rate > g.adjust.ForexHighThreshold:
			return g.adjust.ForexSavingsShift
		case rate < g.adjust.ForexLowThreshold:
			return -g.adjust.ForexSavingsShift
		default:
			return 0
		}
	}

	return g.adjust.Sentiment[at][snap.SentimentOf()]
}

func horizonText(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

func copyProducts(products []model.InvestmentProduct) []model.InvestmentProduct {
	out := make([]model.InvestmentProduct, len(products))
	copy(out, products)
	return out
}
