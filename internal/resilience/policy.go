// Package resilience wraps calls to unreliable external services with
// layered retry, circuit-breaker and fallback policies. Policies are
// explicit objects composed by wrapping at construction time; the
// conventional order is fallback(breaker(retry(op))).
package resilience

import "context"

// Operation is a single unit of work against an external service.
type Operation[T any] func(ctx context.Context) (T, error)

// Policy executes an operation under some failure-handling discipline.
type Policy[T any] interface {
	Execute(ctx context.Context, op Operation[T]) (T, error)
}
