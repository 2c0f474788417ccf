package matching

import (
	"context"
	"sort"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// tripStrategies are the scenarios evaluated for every (request, trip) pair.
// grouped_outbound is not listed here: it collects admissible requests per
// trip first and goes through the packer before producing one candidate.
var tripStrategies = []domain.MatchType{
	domain.MatchDirect,
	domain.MatchReturnTrip,
	domain.MatchLoop,
}

// buildTripCandidate runs one scenario over a (request, trip) pair and turns
// an admissible evaluation into an unscored candidate draft.
func buildTripCandidate(
	ctx context.Context,
	e *Evaluator,
	matchType domain.MatchType,
	req *domain.ClientRequest,
	trip *domain.CarrierTrip,
) *domain.MatchCandidate {
	ev := e.EvaluateTripMatch(ctx, matchType, req, trip)
	if ev == nil {
		return nil
	}
	return &domain.MatchCandidate{
		Reference:        domain.NewMatchReference(matchType, req.RequestID, trip.TripID),
		Type:             matchType,
		RequestID:        req.RequestID,
		TripID:           trip.TripID,
		DepartureLegKm:   ev.DepartureLegKm,
		ArrivalLegKm:     ev.ArrivalLegKm,
		DateDiffDays:     ev.DateDiffDays,
		VolumeM3:         ev.VolumeM3,
		VolumeCompatible: ev.VolumeCompatible,
		ResidualVolumeM3: ev.ResidualVolumeM3,
		Valid:            true,
	}
}

// buildClientPairCandidate runs the client-to-client scenario over two
// requests. Unlike trip scenarios, a pair whose combined volume overflows a
// standard vehicle is still emitted, flagged invalid, so the operator sees
// that the pairing needs a dedicated carrier.
func buildClientPairCandidate(
	ctx context.Context,
	e *Evaluator,
	a, b *domain.ClientRequest,
) *domain.MatchCandidate {
	ev := e.EvaluateClientPair(ctx, a, b)
	if ev == nil {
		return nil
	}
	return &domain.MatchCandidate{
		Reference:        domain.NewMatchReference(domain.MatchClientToClient, a.RequestID, b.RequestID),
		Type:             domain.MatchClientToClient,
		RequestID:        a.RequestID,
		PartnerRequestID: b.RequestID,
		DepartureLegKm:   ev.DepartureLegKm,
		ArrivalLegKm:     ev.ArrivalLegKm,
		DateDiffDays:     ev.DateDiffDays,
		VolumeM3:         ev.VolumeM3,
		VolumeCompatible: ev.VolumeCompatible,
		ResidualVolumeM3: ev.ResidualVolumeM3,
		Valid:            ev.VolumeCompatible,
	}
}

// groupedPackItem prepares an admissible (request, trip) evaluation for the
// packer.
func groupedPackItem(ev *Evaluation, req *domain.ClientRequest) PackItem {
	return PackItem{
		Request:        req,
		CombinedLegKm:  ev.DepartureLegKm + ev.ArrivalLegKm,
		DateDiffDays:   ev.DateDiffDays,
		DepartureLegKm: ev.DepartureLegKm,
		ArrivalLegKm:   ev.ArrivalLegKm,
	}
}

// buildGroupedCandidate turns a packed selection into one multi-client
// candidate. Consolidation needs at least two participants; a single request
// is already covered by the direct scenario.
func buildGroupedCandidate(trip *domain.CarrierTrip, pack PackResult) *domain.MatchCandidate {
	if len(pack.Selected) < 2 {
		return nil
	}

	ids := make([]int, 0, len(pack.Selected))
	var maxDepartureKm, maxArrivalKm float64
	maxDateDiff := 0
	for _, item := range pack.Selected {
		ids = append(ids, item.Request.RequestID)
		if item.DepartureLegKm > maxDepartureKm {
			maxDepartureKm = item.DepartureLegKm
		}
		if item.ArrivalLegKm > maxArrivalKm {
			maxArrivalKm = item.ArrivalLegKm
		}
		if item.DateDiffDays > maxDateDiff {
			maxDateDiff = item.DateDiffDays
		}
	}
	sort.Ints(ids)

	refIDs := make([]int, 0, 1+len(ids))
	refIDs = append(refIDs, trip.TripID)
	refIDs = append(refIDs, ids...)

	return &domain.MatchCandidate{
		Reference:        domain.NewMatchReference(domain.MatchGroupedOutbound, refIDs...),
		Type:             domain.MatchGroupedOutbound,
		RequestID:        ids[0],
		TripID:           trip.TripID,
		RequestIDs:       ids,
		DepartureLegKm:   maxDepartureKm,
		ArrivalLegKm:     maxArrivalKm,
		DateDiffDays:     maxDateDiff,
		VolumeM3:         pack.UsedVolumeM3,
		VolumeCompatible: true,
		ResidualVolumeM3: pack.ResidualM3,
		Valid:            true,
	}
}
