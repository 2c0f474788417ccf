package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

func scoredCandidate(t domain.MatchType, maxLegKm float64, dateDiff int, volumeM3 float64) *domain.MatchCandidate {
	return &domain.MatchCandidate{
		Type:           t,
		DepartureLegKm: maxLegKm,
		ArrivalLegKm:   0,
		DateDiffDays:   dateDiff,
		VolumeM3:       volumeM3,
	}
}

func TestScorePerfectDirectMatch(t *testing.T) {
	w := DefaultOptions().Weights

	// Zero distance, zero date diff, full utilization.
	c := scoredCandidate(domain.MatchDirect, 0, 0, 10)
	assert.Equal(t, 125.0, scoreCandidate(c, 10, w))
}

func TestScoreDistancePenalty(t *testing.T) {
	w := DefaultOptions().Weights

	near := scoreCandidate(scoredCandidate(domain.MatchDirect, 10, 0, 5), 10, w)
	far := scoreCandidate(scoredCandidate(domain.MatchDirect, 40, 0, 5), 10, w)
	assert.Greater(t, near, far)
	assert.Equal(t, 15.0, near-far, "0.5 points per extra kilometre")
}

func TestScoreDatePenalty(t *testing.T) {
	w := DefaultOptions().Weights

	sameDay := scoreCandidate(scoredCandidate(domain.MatchDirect, 0, 0, 5), 10, w)
	threeOff := scoreCandidate(scoredCandidate(domain.MatchDirect, 0, 3, 5), 10, w)
	assert.Equal(t, 6.0, sameDay-threeOff, "2 points per day of offset")
}

func TestScoreUsesWorstLeg(t *testing.T) {
	w := DefaultOptions().Weights

	c := &domain.MatchCandidate{
		Type:           domain.MatchLoop,
		DepartureLegKm: 10,
		ArrivalLegKm:   60,
	}
	short := &domain.MatchCandidate{
		Type:           domain.MatchLoop,
		DepartureLegKm: 10,
		ArrivalLegKm:   10,
	}
	assert.Equal(t, 25.0, scoreCandidate(short, 0, w)-scoreCandidate(c, 0, w))
}

func TestScoreUtilizationClamped(t *testing.T) {
	assert.Equal(t, 0.0, volumeUtilization(5, 0), "no capacity yields no bonus")
	assert.Equal(t, 0.0, volumeUtilization(-1, 10))
	assert.Equal(t, 1.0, volumeUtilization(25, 20), "overfull pairs cap at full bonus")
	assert.Equal(t, 0.5, volumeUtilization(10, 20))
}

func TestScoreScenarioBonusOrdering(t *testing.T) {
	w := DefaultOptions().Weights

	score := func(mt domain.MatchType) float64 {
		return scoreCandidate(scoredCandidate(mt, 20, 1, 5), 10, w)
	}

	loop := score(domain.MatchLoop)
	ret := score(domain.MatchReturnTrip)
	grouped := score(domain.MatchGroupedOutbound)
	pair := score(domain.MatchClientToClient)
	direct := score(domain.MatchDirect)

	assert.Greater(t, loop, ret, "loops reuse the most wasted capacity")
	assert.Greater(t, ret, grouped)
	assert.Greater(t, grouped, pair)
	assert.Greater(t, pair, direct)
}

func TestScoreImprovingOneMetricNeverHurts(t *testing.T) {
	w := DefaultOptions().Weights

	base := scoreCandidate(scoredCandidate(domain.MatchReturnTrip, 30, 2, 5), 10, w)

	closer := scoreCandidate(scoredCandidate(domain.MatchReturnTrip, 20, 2, 5), 10, w)
	sooner := scoreCandidate(scoredCandidate(domain.MatchReturnTrip, 30, 1, 5), 10, w)
	fuller := scoreCandidate(scoredCandidate(domain.MatchReturnTrip, 30, 2, 8), 10, w)

	assert.GreaterOrEqual(t, closer, base)
	assert.GreaterOrEqual(t, sooner, base)
	assert.GreaterOrEqual(t, fuller, base)
}
