package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// Cached distances outlive a single process but not forever: road networks
// change slowly, provider quotas do not.
const distanceTTL = 30 * 24 * time.Hour

const distanceKeyPrefix = "dist:"

// RedisDistanceCache is a Redis-backed cache for origin->destination distance
// results, sitting in front of the external provider. Keys are expected to be
// consistent (already normalized) by the caller.
type RedisDistanceCache struct {
	client *redis.Client
}

func NewRedisDistanceCache(client *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{client: client}
}

// Fetch cached distances for one origin and multiple destinations. Missing
// destinations are simply absent from the result map.
func (c *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.DistanceResult, error) {
	if c.client == nil {
		return nil, errors.New("distance cache: redis client is nil")
	}
	if origin == "" {
		return nil, errors.New("get distance cache: origin must not be empty")
	}
	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	keys := make([]string, 0, len(destinations))
	for _, d := range destinations {
		keys = append(keys, distanceKey(origin, d))
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get distance cache: mget: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		res, err := decodeResult(raw)
		if err != nil {
			// A corrupt entry is treated as a miss, not a failure.
			continue
		}
		out[destinations[i]] = res
	}
	return out, nil
}

// Store distances for one origin and multiple destinations.
func (c *RedisDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) error {
	if c.client == nil {
		return errors.New("distance cache: redis client is nil")
	}
	if origin == "" {
		return errors.New("put distance cache: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for dest, res := range results {
		pipe.Set(ctx, distanceKey(origin, dest), encodeResult(res), distanceTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put distance cache: pipeline exec: %w", err)
	}
	return nil
}

func distanceKey(origin, destination string) string {
	return distanceKeyPrefix + origin + "|" + destination
}

func encodeResult(r ports.DistanceResult) string {
	return strconv.Itoa(r.DistanceMeters) + ":" + strconv.Itoa(r.DurationSeconds)
}

func decodeResult(raw string) (ports.DistanceResult, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return ports.DistanceResult{}, fmt.Errorf("malformed cache entry %q", raw)
	}
	meters, err := strconv.Atoi(parts[0])
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("malformed meters in %q", raw)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("malformed seconds in %q", raw)
	}
	return ports.DistanceResult{DistanceMeters: meters, DurationSeconds: seconds}, nil
}
