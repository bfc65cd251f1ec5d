// Package scheduler runs periodic background jobs, currently the product
// catalog refresh against the latest market snapshot.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
)

// refreshTimeout bounds a single catalog refresh, including the upstream
// market snapshot fetch.
const refreshTimeout = 30 * time.Second

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron     *cron.Cron
	products *service.ProductService
	log      zerolog.Logger
}

// New creates a scheduler that refreshes the product catalog on the given
// cron expression (standard five-field format).
func New(products *service.ProductService, spec string, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		products: products,
		log:      log.With().Str("component", "scheduler").Logger(),
	}

	if _, err := s.cron.AddFunc(spec, s.refreshCatalog); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("catalog refresh schedule started")
}

// Stop halts the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("catalog refresh schedule stopped")
}

func (s *Scheduler) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	list := s.products.RefreshCatalog(ctx)
	s.log.Info().Int("products", list.TotalCount).Msg("catalog refreshed")
}
