package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	Name        string
	MaxFailures uint32        // consecutive failures before the breaker opens
	Cooldown    time.Duration // open duration before a half-open trial
	// OnStateChange is optional; used to export breaker transitions.
	OnStateChange func(name string, from, to gobreaker.State)
}

// NewBreaker builds the shared circuit breaker. One instance has
// process-wide lifetime and is injected into every pipeline that talks
// to the same dependency, so all call sites observe the same state.
func NewBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 60 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1, // a single trial call while half-open
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: cfg.OnStateChange,
	})
}

// BreakerPolicy gates the wrapped policy behind a shared circuit
// breaker. While the breaker is open the inner policy is never invoked;
// the rejection surfaces as ErrOpenState for the fallback layer.
type BreakerPolicy[T any] struct {
	cb    *gobreaker.CircuitBreaker
	inner Policy[T]
}

var _ Policy[any] = (*BreakerPolicy[any])(nil)

func NewBreakerPolicy[T any](cb *gobreaker.CircuitBreaker, inner Policy[T]) *BreakerPolicy[T] {
	return &BreakerPolicy[T]{cb: cb, inner: inner}
}

func (p *BreakerPolicy[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	res, err := p.cb.Execute(func() (any, error) {
		return p.inner.Execute(ctx, op)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := res.(T)
	return out, nil
}

// IsBreakerOpen reports whether err is a breaker rejection rather than a
// failure of the wrapped call itself.
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
