package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedClient spaces out requests to a downstream service. Requests
// wait for a token; they are never dropped.
type RateLimitedClient struct {
	next    Doer
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps next with a token bucket of rps requests per
// second and the given burst. A non-positive rps disables limiting.
func NewRateLimitedClient(next Doer, rps float64, burst int) *RateLimitedClient {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &RateLimitedClient{next: next, limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Do waits for the limiter, then executes the request.
func (c *RateLimitedClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return c.next.Do(ctx, req)
}
