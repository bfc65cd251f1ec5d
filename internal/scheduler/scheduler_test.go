package scheduler_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/scheduler"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/testutil"
)

// TestNew tests cron expression validation at construction.
//
// WHY: A bad schedule should fail server startup loudly rather than silently
// never refreshing the catalog.
func TestNew(t *testing.T) {
	markets := service.NewMarketService(testutil.FixedMarket(nil), nil, zerolog.Nop())
	products := service.NewProductService(&testutil.StubCatalog{}, markets, zerolog.Nop())

	t.Run("accepts a five-field expression", func(t *testing.T) {
		s, err := scheduler.New(products, "0 */6 * * *", zerolog.Nop())
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		s.Start()
		s.Stop()
	})

	t.Run("rejects a malformed expression", func(t *testing.T) {
		if _, err := scheduler.New(products, "every six hours", zerolog.Nop()); err == nil {
			t.Error("Expected an error for a malformed cron expression")
		}
	})
}
