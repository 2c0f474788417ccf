package ports

import "context"

// Road distance and travel duration between two location keys.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving road travel distance between two locations.
// Keys are ordered: (from, to) and (to, from) are distinct lookups.
type DistanceProvider interface {
	// Return travel distance and estimated duration from origin to destination.
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}

// Optional extension of DistanceProvider that supports batched lookups,
// used by the resolver to pre-warm its cache before a matching pass.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from one origin to many destinations.
	GetDistances(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
}
