package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"letterforge/internal/model"
)

// RedisStore implements DocumentStore on redis with native key expiry. It is
// the shared-store variant for deployments with more than one instance; the
// API contract is identical to MemoryStore.
type RedisStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisStore(client *redisv9.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, id string, record model.DocumentRecord) error {
	record.GeneratedAt = time.Now()

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal document failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set document failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*model.DocumentRecord, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redisv9.Nil {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get document failed: %w", err)
	}

	var record model.DocumentRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("unmarshal document failed: %w", err)
	}
	return &record, nil
}

// MarkPaid rewrites the record with KeepTTL so unlocking never extends the
// expiry window. Concurrent readers may see the flag before or after the
// flip; that interleaving is acceptable.
func (s *RedisStore) MarkPaid(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if record.IsPaid {
		return nil
	}
	record.IsPaid = true

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal document failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), payload, redisv9.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis mark paid failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete document failed: %w", err)
	}
	if deleted == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return "letter:doc:" + id
}
