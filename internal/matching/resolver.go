package matching

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// cacheShards stripes the distance cache so concurrent pair evaluations do
// not contend on a single lock. Must be a power of two.
const cacheShards = 16

// providerCallsPerSecond caps outbound provider traffic during pre-warming.
const providerCallsPerSecond = 5

type cacheShard struct {
	mu sync.RWMutex
	km map[string]float64
}

// Resolver resolves road distances between location identifiers.
//
// Lookups go through a sharded in-memory cache that lives for the resolver's
// lifetime. Cache misses consult the external provider; when the provider is
// unavailable the resolver substitutes a deterministic postal-prefix estimate
// instead of surfacing the failure, so a matching pass always completes.
// Keys are ordered pairs: (from, to) and (to, from) are cached independently.
//
// The resolver is safe for concurrent use.
type Resolver struct {
	provider  ports.DistanceProvider
	limiter   *rate.Limiter
	batchSize int
	shards    [cacheShards]cacheShard
	fallbacks atomic.Int64
}

// NewResolver builds a resolver over the given provider. batchSize bounds the
// destinations per provider call during pre-warming; values below one fall
// back to the default.
func NewResolver(provider ports.DistanceProvider, batchSize int) *Resolver {
	if batchSize < 1 {
		batchSize = DefaultProviderBatchSize
	}
	r := &Resolver{
		provider:  provider,
		limiter:   rate.NewLimiter(rate.Limit(providerCallsPerSecond), providerCallsPerSecond),
		batchSize: batchSize,
	}
	for i := range r.shards {
		r.shards[i].km = make(map[string]float64)
	}
	return r
}

// ResolveKm returns the road distance in kilometres from one location to
// another. It never fails: provider errors degrade to the deterministic
// fallback estimate, which is cached like any other result.
func (r *Resolver) ResolveKm(ctx context.Context, from, to domain.Location) float64 {
	key := pairKey(from, to)
	if km, ok := r.lookup(key); ok {
		return km
	}
	if from.Key() == to.Key() {
		r.store(key, 0)
		return 0
	}

	if r.provider != nil {
		res, err := r.provider.GetDistance(ctx, from.Key(), to.Key())
		if err == nil {
			km := float64(res.DistanceMeters) / 1000.0
			r.store(key, km)
			return km
		}
	}

	km := fallbackKm(from, to)
	r.fallbacks.Add(1)
	r.store(key, km)
	return km
}

// PrewarmMatrix fills the cache for all ordered pairs of the given locations
// in bounded batches, so the evaluation loop never issues serial network
// calls. Provider failures are absorbed per batch via the fallback estimate;
// only context cancellation aborts the pre-warm.
func (r *Resolver) PrewarmMatrix(ctx context.Context, locations []domain.Location) error {
	distinct := dedupeLocations(locations)
	if len(distinct) < 2 {
		return nil
	}

	matrixProvider, hasMatrix := r.provider.(ports.DistanceMatrixProvider)

	for _, origin := range distinct {
		// Skip destinations already cached for this origin.
		pending := make([]domain.Location, 0, len(distinct)-1)
		for _, dest := range distinct {
			if dest.Key() == origin.Key() {
				continue
			}
			if _, ok := r.lookup(pairKey(origin, dest)); !ok {
				pending = append(pending, dest)
			}
		}

		for start := 0; start < len(pending); start += r.batchSize {
			end := start + r.batchSize
			if end > len(pending) {
				end = len(pending)
			}
			batch := pending[start:end]

			if err := r.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("prewarm matrix: rate limit wait: %w", err)
			}

			if err := r.warmBatch(ctx, matrixProvider, hasMatrix, origin, batch); err != nil {
				return err
			}
		}
	}

	return nil
}

// warmBatch resolves one origin against a bounded destination batch.
func (r *Resolver) warmBatch(
	ctx context.Context,
	matrixProvider ports.DistanceMatrixProvider,
	hasMatrix bool,
	origin domain.Location,
	batch []domain.Location,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.provider != nil && hasMatrix {
		keys := make([]string, 0, len(batch))
		byKey := make(map[string]domain.Location, len(batch))
		for _, dest := range batch {
			keys = append(keys, dest.Key())
			byKey[dest.Key()] = dest
		}

		results, err := matrixProvider.GetDistances(ctx, origin.Key(), keys)
		if err == nil {
			for key, dest := range byKey {
				if res, ok := results[key]; ok {
					r.store(pairKey(origin, dest), float64(res.DistanceMeters)/1000.0)
					continue
				}
				r.storeFallback(origin, dest)
			}
			return nil
		}
		// A failed matrix call degrades the whole batch, never the run.
		for _, dest := range batch {
			r.storeFallback(origin, dest)
		}
		return nil
	}

	for _, dest := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.provider != nil {
			res, err := r.provider.GetDistance(ctx, origin.Key(), dest.Key())
			if err == nil {
				r.store(pairKey(origin, dest), float64(res.DistanceMeters)/1000.0)
				continue
			}
		}
		r.storeFallback(origin, dest)
	}
	return nil
}

// FallbackCount reports how many lookups degraded to the postal estimate.
// Surfaced in the run summary as a warning-level signal.
func (r *Resolver) FallbackCount() int64 {
	return r.fallbacks.Load()
}

func (r *Resolver) storeFallback(from, to domain.Location) {
	r.fallbacks.Add(1)
	r.store(pairKey(from, to), fallbackKm(from, to))
}

func (r *Resolver) lookup(key string) (float64, bool) {
	s := &r.shards[shardIndex(key)]
	s.mu.RLock()
	km, ok := s.km[key]
	s.mu.RUnlock()
	return km, ok
}

func (r *Resolver) store(key string, km float64) {
	s := &r.shards[shardIndex(key)]
	s.mu.Lock()
	s.km[key] = km
	s.mu.Unlock()
}

func shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() & (cacheShards - 1))
}

func pairKey(from, to domain.Location) string {
	return from.Key() + "|" + to.Key()
}

func dedupeLocations(locations []domain.Location) []domain.Location {
	seen := make(map[string]struct{}, len(locations))
	out := make([]domain.Location, 0, len(locations))
	for _, l := range locations {
		key := l.Key()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}
