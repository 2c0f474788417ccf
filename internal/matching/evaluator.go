package matching

import (
	"context"
	"time"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// Evaluation carries the raw admissibility metrics of one candidate pairing,
// before scoring. A nil Evaluation means the pairing is inadmissible and no
// candidate is produced for it.
type Evaluation struct {
	DepartureLegKm   float64
	ArrivalLegKm     float64
	DateDiffDays     int
	VolumeM3         float64
	ResidualVolumeM3 float64
	VolumeCompatible bool
}

// Evaluator decides whether a given match type is geometrically, temporally
// and volumetrically admissible for a pairing, and computes its raw metrics.
// It is pure given its inputs plus the resolver's cache: records are assumed
// normalized before evaluation.
type Evaluator struct {
	resolver *Resolver
	opts     Options
}

func NewEvaluator(resolver *Resolver, opts Options) *Evaluator {
	return &Evaluator{resolver: resolver, opts: opts}
}

// EvaluateTripMatch checks one request against one trip under the given
// scenario. Returns nil when any leg distance, the date difference or the
// volume exceeds the scenario's thresholds.
func (e *Evaluator) EvaluateTripMatch(
	ctx context.Context,
	matchType domain.MatchType,
	req *domain.ClientRequest,
	trip *domain.CarrierTrip,
) *Evaluation {
	var (
		departureLegKm float64
		arrivalLegKm   float64
		radiusKm       float64
		windowDays     int
	)

	switch matchType {
	case domain.MatchDirect:
		departureLegKm = e.resolver.ResolveKm(ctx, req.Departure, trip.Departure)
		arrivalLegKm = e.resolver.ResolveKm(ctx, req.Arrival, trip.Arrival)
		radiusKm = e.opts.DirectRadiusKm
		windowDays = e.opts.DirectWindowDays
		// A request's own flexibility narrows or widens the direct window.
		if req.FlexibilityDays > 0 {
			windowDays = req.FlexibilityDays
		}
	case domain.MatchReturnTrip:
		// The request rides the empty leg back: its departure must sit near
		// the trip's arrival and vice versa.
		departureLegKm = e.resolver.ResolveKm(ctx, req.Departure, trip.Arrival)
		arrivalLegKm = e.resolver.ResolveKm(ctx, req.Arrival, trip.Departure)
		radiusKm = e.opts.ReturnTripRadiusKm
		windowDays = e.opts.ReturnTripWindowDays
	case domain.MatchLoop:
		if !trip.MultiStop() {
			return nil
		}
		departureLegKm = e.resolver.ResolveKm(ctx, req.Departure, trip.Departure)
		arrivalLegKm = e.resolver.ResolveKm(ctx, req.Arrival, trip.Arrival)
		radiusKm = e.opts.LoopRadiusKm
		windowDays = e.opts.LoopWindowDays
	case domain.MatchGroupedOutbound:
		departureLegKm = e.resolver.ResolveKm(ctx, req.Departure, trip.Departure)
		arrivalLegKm = e.resolver.ResolveKm(ctx, req.Arrival, trip.Arrival)
		radiusKm = e.opts.GroupedRadiusKm
		windowDays = e.opts.GroupedWindowDays
	default:
		return nil
	}

	if matchType == domain.MatchLoop {
		// A circuit can absorb one distant leg: either leg within the radius
		// keeps the insertion admissible.
		if departureLegKm > radiusKm && arrivalLegKm > radiusKm {
			return nil
		}
	} else {
		if departureLegKm > radiusKm || arrivalLegKm > radiusKm {
			return nil
		}
	}

	dateDiff := dateDiffDays(req.DesiredDate, trip.DepartureDate)
	if dateDiff > windowDays {
		return nil
	}

	available := trip.AvailableVolumeM3()
	if req.VolumeM3 > available {
		return nil
	}

	return &Evaluation{
		DepartureLegKm:   departureLegKm,
		ArrivalLegKm:     arrivalLegKm,
		DateDiffDays:     dateDiff,
		VolumeM3:         req.VolumeM3,
		ResidualVolumeM3: available - req.VolumeM3,
		VolumeCompatible: true,
	}
}

// EvaluateClientPair checks two requests against each other, either sharing
// the same route or chaining one move into the next (A's arrival feeding B's
// departure). Volume here only flags whether a single standard vehicle could
// serve both; an incompatible volume still yields an evaluation, flagged.
func (e *Evaluator) EvaluateClientPair(
	ctx context.Context,
	a, b *domain.ClientRequest,
) *Evaluation {
	radiusKm := e.opts.ClientPairRadiusKm

	// Same-route: both ends of both moves sit within the radius.
	departureLegKm := e.resolver.ResolveKm(ctx, a.Departure, b.Departure)
	arrivalLegKm := e.resolver.ResolveKm(ctx, a.Arrival, b.Arrival)
	sameRoute := departureLegKm <= radiusKm && arrivalLegKm <= radiusKm

	if !sameRoute {
		// Complementary: A's drop-off neighbours B's pickup, so one vehicle
		// can chain the two moves.
		chainKm := e.resolver.ResolveKm(ctx, a.Arrival, b.Departure)
		if chainKm > radiusKm {
			return nil
		}
		departureLegKm = chainKm
		arrivalLegKm = 0
	}

	dateDiff := dateDiffDays(a.DesiredDate, b.DesiredDate)
	if dateDiff > e.opts.ClientPairWindowDays {
		return nil
	}

	combined := a.VolumeM3 + b.VolumeM3
	capacity := e.opts.StandardVehicleM3
	residual := capacity - combined
	if residual < 0 {
		residual = 0
	}

	return &Evaluation{
		DepartureLegKm:   departureLegKm,
		ArrivalLegKm:     arrivalLegKm,
		DateDiffDays:     dateDiff,
		VolumeM3:         combined,
		ResidualVolumeM3: residual,
		VolumeCompatible: combined <= capacity,
	}
}

// dateDiffDays returns the absolute whole-day difference between two dates.
func dateDiffDays(a, b time.Time) int {
	da := truncateDay(a)
	db := truncateDay(b)
	diff := int(da.Sub(db).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
