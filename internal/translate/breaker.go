package translate

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// WithBreaker wraps a provider in a circuit breaker. After several
// consecutive hard failures the breaker opens and batches fail immediately
// instead of each spending the full retry budget against a dead endpoint.
// Rate-limit errors do not count as failures; the engine's own retry loop
// handles those.
func WithBreaker(inner Provider) Provider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "translate",
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsRateLimited(err)
		},
	})
	return &breakerProvider{inner: inner, cb: cb}
}

type breakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker
}

func (b *breakerProvider) TranslateBatch(ctx context.Context, batch map[string]string, targetLocale string) (map[string]string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.TranslateBatch(ctx, batch, targetLocale)
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]string), nil
}
