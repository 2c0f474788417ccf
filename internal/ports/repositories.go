package ports

import (
	"context"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// Port: a boundary for reading client requests from the data store.
// The store is read-only to the matching engine.
type RequestRepository interface {
	// Retrieve all requests in a matchable lifecycle state.
	ListOpenRequests(ctx context.Context) ([]*domain.ClientRequest, error)
}

// Port: a boundary for reading carrier trips from the data store.
type TripRepository interface {
	// Retrieve all trips with remaining capacity in a matchable state.
	ListAvailableTrips(ctx context.Context) ([]*domain.CarrierTrip, error)
}

// Port: a write-only sink for operator accept/reject decisions.
// Decrementing trip volume on acceptance happens behind this boundary,
// never inside the engine.
type DecisionSink interface {
	RecordDecision(ctx context.Context, decision domain.MatchDecision) error
}
