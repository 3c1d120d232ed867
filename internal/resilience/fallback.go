package resilience

import (
	"context"

	"github.com/rs/zerolog"
)

// FallbackPolicy is the outermost layer: when the wrapped policy still
// fails (including breaker-open rejections) it substitutes a configured
// value or delegates to a handler. With neither configured the error
// propagates unchanged, which is what the processing job wants.
type FallbackPolicy[T any] struct {
	inner    Policy[T]
	value    T
	hasValue bool
	handler  func(ctx context.Context, err error) (T, error)
	log      *zerolog.Logger
}

var _ Policy[any] = (*FallbackPolicy[any])(nil)

type FallbackOption[T any] func(*FallbackPolicy[T])

// WithFallbackValue makes failures resolve to a fixed safe value.
func WithFallbackValue[T any](v T) FallbackOption[T] {
	return func(p *FallbackPolicy[T]) {
		p.value = v
		p.hasValue = true
	}
}

// WithFallbackHandler lets the caller decide what a failure becomes.
func WithFallbackHandler[T any](h func(ctx context.Context, err error) (T, error)) FallbackOption[T] {
	return func(p *FallbackPolicy[T]) { p.handler = h }
}

func NewFallbackPolicy[T any](inner Policy[T], logger *zerolog.Logger, opts ...FallbackOption[T]) *FallbackPolicy[T] {
	l := logger.With().Str("policy", "fallback").Logger()
	p := &FallbackPolicy[T]{inner: inner, log: &l}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *FallbackPolicy[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	res, err := p.inner.Execute(ctx, op)
	if err == nil {
		return res, nil
	}
	if IsBreakerOpen(err) {
		p.log.Warn().Err(err).Msg("circuit breaker rejected the call")
	} else {
		p.log.Error().Err(err).Msg("wrapped call failed after all policies")
	}
	if p.handler != nil {
		return p.handler(ctx, err)
	}
	if p.hasValue {
		return p.value, nil
	}
	var zero T
	return zero, err
}
