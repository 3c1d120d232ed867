package repository

import (
	"context"
	"time"
)

// ResultCache maps an input fingerprint to the sanitized extraction
// result. It is an optimization only: the relational record stays
// authoritative, and callers treat any cache error as a miss.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (map[string]any, error)
	Set(ctx context.Context, fingerprint string, result map[string]any, ttl time.Duration) error
}
