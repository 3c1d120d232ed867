package redis

import (
	"context"
	"encoding/json"
	"time"

	"medvextract/internal/domain"
	"medvextract/internal/domain/ports/repository"
)

var _ repository.ResultCache = (*ResultCache)(nil)

// ResultCache stores sanitized extraction results keyed by input
// fingerprint. Entries expire on their own; nothing here is ever
// authoritative over the relational record.
type ResultCache struct {
	client RedisClient
}

func NewResultCache(client RedisClient) *ResultCache {
	return &ResultCache{client: client}
}

func (c *ResultCache) Get(ctx context.Context, fingerprint string) (map[string]any, error) {
	data, err := c.client.Get(ctx, key(fingerprint))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ResultCache) Set(ctx context.Context, fingerprint string, result map[string]any, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(fingerprint), data, ttl)
}

func key(fingerprint string) string { return "vet_result:" + fingerprint }
