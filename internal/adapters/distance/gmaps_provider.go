package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/adapters/cache"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/platform/obs"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// GoogleMapsProvider implements DistanceProvider against the Google Maps
// Distance Matrix API.
//
// It coordinates:
//   - Location key normalization
//   - A persistent Redis distance cache in front of the API
//   - Batched matrix lookups
//
// The provider is safe for concurrent use.
type GoogleMapsProvider struct {
	client        *maps.Client
	distanceCache *cache.RedisDistanceCache
}

// NewGoogleMapsProvider builds a provider with the given API key. The cache
// is optional; a nil cache means every lookup hits the API.
func NewGoogleMapsProvider(apiKey string, distanceCache *cache.RedisDistanceCache) (*GoogleMapsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	return &GoogleMapsProvider{client: client, distanceCache: distanceCache}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleMapsProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Delegate to the batched path to reuse caching and matrix logic.
func (g *GoogleMapsProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	normOrigin := g.normalize(origin)
	normDestination := g.normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.DistanceResult{}, errors.New("get distance: origin and destination must be non-empty")
	}

	results, err := g.GetDistances(ctx, normOrigin, []string{normDestination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distances %q -> %q: %w", normOrigin, normDestination, err)
	}

	result, ok := results[normDestination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %q -> %q", origin, destination)
	}
	return result, nil
}

// Compute distances from a single origin to many destinations.
func (g *GoogleMapsProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "gmaps.GetDistances")(&err)

	normOrigin := g.normalize(origin)
	if normOrigin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]string, 0, len(destinations))
	for _, d := range destinations {
		nd := g.normalize(d)
		if nd == "" || nd == normOrigin {
			continue
		}
		if _, ok := seen[nd]; ok {
			continue
		}
		seen[nd] = struct{}{}
		destList = append(destList, nd)
	}
	if len(destList) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	hits := make(map[string]ports.DistanceResult)
	// Check the persistent cache before issuing external API calls.
	if g.distanceCache != nil {
		var err error
		hits, err = g.distanceCache.GetMany(ctx, normOrigin, destList)
		if err != nil {
			return nil, fmt.Errorf("get distance cache: %w", err)
		}
	}

	misses := make([]string, 0, len(destList))
	for _, d := range destList {
		if _, ok := hits[d]; !ok {
			misses = append(misses, d)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	fetched, err := g.fetchMatrixRow(ctx, normOrigin, misses)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	if g.distanceCache != nil && len(fetched) > 0 {
		if err := g.distanceCache.PutMany(ctx, normOrigin, fetched); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}

	out := make(map[string]ports.DistanceResult, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// fetchMatrixRow retrieves one origin->many row from the Distance Matrix API.
func (g *GoogleMapsProvider) fetchMatrixRow(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.DistanceResult, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: destinations,
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
		Language:     "fr", // French addresses for consistency
	}

	resp, err := g.client.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request: %w", err)
	}

	if len(resp.Rows) != 1 {
		return nil, fmt.Errorf("expected 1 matrix row, got %d", len(resp.Rows))
	}
	elements := resp.Rows[0].Elements
	if len(elements) != len(destinations) {
		return nil, fmt.Errorf(
			"matrix row length does not match destinations: elements=%d destinations=%d",
			len(elements), len(destinations),
		)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for i, dest := range destinations {
		el := elements[i]
		if el.Status != "OK" {
			return nil, fmt.Errorf("matrix element for %q returned status %q", dest, el.Status)
		}
		out[dest] = ports.DistanceResult{
			DistanceMeters:  el.Distance.Meters,
			DurationSeconds: int(el.Duration.Seconds()),
		}
	}
	return out, nil
}
