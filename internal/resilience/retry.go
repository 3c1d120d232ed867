package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

type RetryConfig struct {
	Attempts       int           // total attempts, including the first
	MinBackoff     time.Duration // initial delay between attempts
	MaxBackoff     time.Duration // delay ceiling
	AttemptTimeout time.Duration // per-attempt deadline; 0 disables
	// Retryable filters which errors are worth another attempt.
	// nil retries everything.
	Retryable func(error) bool
}

func (c *RetryConfig) setDefaults() {
	if c.Attempts <= 0 {
		c.Attempts = 3
	}
	if c.MinBackoff <= 0 {
		c.MinBackoff = time.Second
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 10 * time.Second
	}
}

// RetryPolicy re-runs the operation with exponential backoff bounded by
// [MinBackoff, MaxBackoff]. Exhausting the attempts returns the last
// error unchanged.
type RetryPolicy[T any] struct {
	cfg RetryConfig
	log *zerolog.Logger
}

var _ Policy[any] = (*RetryPolicy[any])(nil)

func NewRetryPolicy[T any](cfg RetryConfig, logger *zerolog.Logger) *RetryPolicy[T] {
	cfg.setDefaults()
	l := logger.With().Str("policy", "retry").Logger()
	return &RetryPolicy[T]{cfg: cfg, log: &l}
}

func (p *RetryPolicy[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	var zero T

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.cfg.MinBackoff
	bo.MaxInterval = p.cfg.MaxBackoff
	bo.MaxElapsedTime = 0 // attempts are the only bound
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= p.cfg.Attempts; attempt++ {
		res, err := p.runOnce(ctx, op)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if p.cfg.Retryable != nil && !p.cfg.Retryable(err) {
			return zero, err
		}
		if attempt == p.cfg.Attempts {
			break
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		p.log.Debug().Int("attempt", attempt).Dur("backoff", wait).Err(err).Msg("retrying after failure")
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}
	return zero, lastErr
}

func (p *RetryPolicy[T]) runOnce(ctx context.Context, op Operation[T]) (T, error) {
	if p.cfg.AttemptTimeout <= 0 {
		return op(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
	defer cancel()
	return op(attemptCtx)
}
