package store

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redisv9.NewClient(&redisv9.Options{Addr: m.Addr()})
	return NewRedisStore(client, ttl), m
}

func TestRedisStore_CreateGet(t *testing.T) {
	s, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	id := NewDocumentID()
	require.NoError(t, s.Create(ctx, id, sampleRecord()))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.False(t, got.IsPaid)
	require.Equal(t, "Jane Doe", got.Form.AboutYou.FullName)
	require.False(t, got.GeneratedAt.IsZero())
}

func TestRedisStore_GetUnknown(t *testing.T) {
	s, _ := newTestRedisStore(t, time.Hour)

	_, err := s.Get(context.Background(), "doc_0_missing")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestRedisStore_MarkPaid(t *testing.T) {
	s, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	id := NewDocumentID()
	require.NoError(t, s.Create(ctx, id, sampleRecord()))

	require.NoError(t, s.MarkPaid(ctx, id))
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, got.IsPaid)

	require.NoError(t, s.MarkPaid(ctx, id))

	require.ErrorIs(t, s.MarkPaid(ctx, "doc_0_missing"), ErrDocumentNotFound)
}

func TestRedisStore_MarkPaidKeepsTTL(t *testing.T) {
	s, m := newTestRedisStore(t, 2*time.Second)
	ctx := context.Background()

	id := NewDocumentID()
	require.NoError(t, s.Create(ctx, id, sampleRecord()))
	require.NoError(t, s.MarkPaid(ctx, id))

	// unlocking must not have reset the expiry window
	m.FastForward(3 * time.Second)

	_, err := s.Get(ctx, id)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	s, m := newTestRedisStore(t, time.Second)
	ctx := context.Background()

	id := NewDocumentID()
	require.NoError(t, s.Create(ctx, id, sampleRecord()))

	_, err := s.Get(ctx, id)
	require.NoError(t, err)

	m.FastForward(2 * time.Second)

	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	s, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	id := NewDocumentID()
	require.NoError(t, s.Create(ctx, id, sampleRecord()))

	require.NoError(t, s.Delete(ctx, id))
	require.ErrorIs(t, s.Delete(ctx, id), ErrDocumentNotFound)
}
