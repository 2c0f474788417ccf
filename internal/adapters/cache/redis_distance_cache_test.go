package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

func newTestCache(t *testing.T) (*RedisDistanceCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDistanceCache(client), mr
}

func TestDistanceCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	stored := map[string]ports.DistanceResult{
		"69001 lyon":      {DistanceMeters: 465000, DurationSeconds: 16500},
		"13001 marseille": {DistanceMeters: 775000, DurationSeconds: 25800},
	}
	require.NoError(t, c.PutMany(ctx, "75001 paris", stored))

	got, err := c.GetMany(ctx, "75001 paris", []string{"69001 lyon", "13001 marseille"})
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestDistanceCacheMissesAreAbsent(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, "75001 paris", map[string]ports.DistanceResult{
		"69001 lyon": {DistanceMeters: 465000, DurationSeconds: 16500},
	}))

	got, err := c.GetMany(ctx, "75001 paris", []string{"69001 lyon", "31000 toulouse"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	_, ok := got["31000 toulouse"]
	assert.False(t, ok, "never-stored destinations stay absent from the result")
}

func TestDistanceCacheKeysAreDirectional(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, "75001 paris", map[string]ports.DistanceResult{
		"69001 lyon": {DistanceMeters: 465000, DurationSeconds: 16500},
	}))

	got, err := c.GetMany(ctx, "69001 lyon", []string{"75001 paris"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDistanceCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set("dist:75001 paris|69001 lyon", "not-a-distance")
	mr.Set("dist:75001 paris|13001 marseille", "775000:25800")

	got, err := c.GetMany(ctx, "75001 paris", []string{"69001 lyon", "13001 marseille"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 775000, DurationSeconds: 25800}, got["13001 marseille"])
}

func TestDistanceCacheEmptyDestinations(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetMany(context.Background(), "75001 paris", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDistanceCacheRejectsEmptyOrigin(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.GetMany(context.Background(), "", []string{"69001 lyon"})
	assert.Error(t, err)
	assert.Error(t, c.PutMany(context.Background(), "", map[string]ports.DistanceResult{
		"69001 lyon": {DistanceMeters: 1000},
	}))
}

func TestDistanceCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, "75001 paris", map[string]ports.DistanceResult{
		"69001 lyon": {DistanceMeters: 465000, DurationSeconds: 16500},
	}))

	mr.FastForward(distanceTTL + time.Hour)

	got, err := c.GetMany(ctx, "75001 paris", []string{"69001 lyon"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
