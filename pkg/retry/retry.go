package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// Config tunes startup connection retries. Provider calls are never
// retried; this package exists only for infrastructure coming up in the
// wrong order.
type Config struct {
	Attempts  uint
	BaseDelay time.Duration
	MaxDelay  time.Duration
	OnRetry   func(attempt uint, err error)
}

func DefaultConfig() Config {
	return Config{
		Attempts:  5,
		BaseDelay: 1 * time.Second,
		MaxDelay:  30 * time.Second,
	}
}

// Do runs fn with exponential backoff until it succeeds, the attempts
// are exhausted, or the context is canceled. Only the last error is
// returned.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	onRetry := cfg.OnRetry
	if onRetry == nil {
		onRetry = func(uint, error) {}
	}
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(cfg.Attempts),
		retry.Delay(cfg.BaseDelay),
		retry.MaxDelay(cfg.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(onRetry),
	)
}
