package matching

import "github.com/matchmovefrance/move-match-motion-sub002/internal/domain"

// scoreCandidate converts a candidate's raw metrics into the single figure
// the ranking sorts on.
//
//	score = base
//	      - maxLegKm   * distancePenaltyPerKm
//	      - dateDiff   * datePenaltyPerDay
//	      + utilization * volumeBonusWeight
//	      + scenarioBonus(type)
//
// utilization is assigned volume over the trip's available volume before
// assignment, clamped to [0, 1]. Scores carry no cross-run meaning; they only
// order candidates within one aggregation pass. Improving any single
// penalized metric while holding the rest fixed never lowers the score.
func scoreCandidate(c *domain.MatchCandidate, availableBeforeM3 float64, w ScoreWeights) float64 {
	score := w.Base
	score -= c.MaxLegKm() * w.DistancePenaltyPerKm
	score -= float64(c.DateDiffDays) * w.DatePenaltyPerDay
	score += volumeUtilization(c.VolumeM3, availableBeforeM3) * w.VolumeBonusWeight
	score += scenarioBonus(c.Type, w)
	return score
}

func volumeUtilization(assignedM3, availableBeforeM3 float64) float64 {
	if availableBeforeM3 <= 0 {
		return 0
	}
	ratio := assignedM3 / availableBeforeM3
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// scenarioBonus ranks strategies by operational value: consolidations that
// reuse otherwise-wasted capacity score above plain direct pairings.
func scenarioBonus(t domain.MatchType, w ScoreWeights) float64 {
	switch t {
	case domain.MatchLoop:
		return w.LoopBonus
	case domain.MatchReturnTrip:
		return w.ReturnTripBonus
	case domain.MatchGroupedOutbound:
		return w.GroupedBonus
	case domain.MatchClientToClient:
		return w.ClientPairBonus
	case domain.MatchDirect:
		return w.DirectBonus
	default:
		return 0
	}
}
