// Package upstream implements the HTTP clients for the sibling services the
// engine consumes: customer profiles, asset holdings, and market data. All
// calls are context-bounded and run behind a circuit breaker; callers are
// expected to degrade to documented defaults when a fetch fails.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
)

// errNotFound distinguishes a 404 from transport failures inside the breaker.
var errNotFound = fmt.Errorf("upstream resource: %w", apperrors.ErrMissingUpstreamData)

// client is the shared HTTP plumbing for all upstream services.
type client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func newClient(name, baseURL string, timeout time.Duration) client {
	settings := gobreaker.Settings{
		Name:     name,
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
	}

	return client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

// getJSON fetches path and decodes the body into dest. A 404 is reported as
// errNotFound without counting against the breaker; other non-2xx statuses
// and transport errors trip it.
func (c client) getJSON(ctx context.Context, path string, dest interface{}) error {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, errNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
