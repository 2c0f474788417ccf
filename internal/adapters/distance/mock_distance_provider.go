package distance

import (
	"context"
	"fmt"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// MockDistanceProvider serves fixed pairs for tests. With Unavailable set it
// fails every lookup, which exercises the resolver's fallback path.
type MockDistanceProvider struct {
	m           map[string]ports.DistanceResult
	Unavailable bool
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	if p.Unavailable {
		return ports.DistanceResult{}, fmt.Errorf("distance provider unavailable")
	}
	r, ok := p.m[origin+"|"+destination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}
	return r, nil
}

// GetDistances implements the matrix extension so prewarm tests cover the
// batched path.
func (p *MockDistanceProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.DistanceResult, error) {
	if p.Unavailable {
		return nil, fmt.Errorf("distance provider unavailable")
	}
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, ok := p.m[origin+"|"+d]
		if !ok {
			return nil, fmt.Errorf("missing pair %q -> %q", origin, d)
		}
		out[d] = r
	}
	return out, nil
}
