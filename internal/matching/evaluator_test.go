package matching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/adapters/distance"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

var evalDate = time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

func newTestEvaluator(pairs []distance.MockPair) *Evaluator {
	provider := distance.NewMockDistanceProvider(pairs)
	provider.Unavailable = pairs == nil
	return NewEvaluator(NewResolver(provider, 25), DefaultOptions())
}

func testRequest(id int, from, to domain.Location, date time.Time, volumeM3 float64) *domain.ClientRequest {
	return &domain.ClientRequest{
		RequestID:   id,
		Departure:   from,
		Arrival:     to,
		DesiredDate: date,
		VolumeM3:    volumeM3,
		Status:      domain.RequestPending,
	}
}

func testTrip(id int, from, to domain.Location, date time.Time, maxM3, usedM3 float64) *domain.CarrierTrip {
	return &domain.CarrierTrip{
		TripID:        id,
		CarrierName:   "Transports Morel",
		Departure:     from,
		Arrival:       to,
		DepartureDate: date,
		MaxVolumeM3:   maxM3,
		UsedVolumeM3:  usedM3,
		Status:        domain.TripConfirmed,
		RouteType:     domain.RouteDirect,
	}
}

func TestEvaluateDirectExactRoute(t *testing.T) {
	e := newTestEvaluator(nil)

	req := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 5)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)

	ev := e.EvaluateTripMatch(context.Background(), domain.MatchDirect, req, trip)
	require.NotNil(t, ev)
	assert.Equal(t, 0.0, ev.DepartureLegKm)
	assert.Equal(t, 0.0, ev.ArrivalLegKm)
	assert.Equal(t, 0, ev.DateDiffDays)
	assert.True(t, ev.VolumeCompatible)
	assert.Equal(t, 5.0, ev.ResidualVolumeM3)
}

func TestEvaluateDirectRejectsVolumeOverflow(t *testing.T) {
	e := newTestEvaluator(nil)

	req := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 30)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)

	assert.Nil(t, e.EvaluateTripMatch(context.Background(), domain.MatchDirect, req, trip),
		"volume beyond capacity is filtered, not emitted as invalid")
}

func TestEvaluateDirectRejectsDistantLeg(t *testing.T) {
	// 60 km between the departure points exceeds the 50 km direct radius.
	e := newTestEvaluator([]distance.MockPair{
		{From: "45000 orleans", To: "75001 paris", Meters: 60000, Seconds: 3600},
		{From: "69001 lyon", To: "69001 lyon", Meters: 0, Seconds: 0},
	})

	req := testRequest(1, loc("45000", "Orleans"), loc("69001", "Lyon"), evalDate, 5)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)

	assert.Nil(t, e.EvaluateTripMatch(context.Background(), domain.MatchDirect, req, trip))
}

func TestEvaluateDirectHonorsRequestFlexibility(t *testing.T) {
	e := newTestEvaluator(nil)

	req := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate.AddDate(0, 0, 5), 5)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)

	assert.Nil(t, e.EvaluateTripMatch(context.Background(), domain.MatchDirect, req, trip),
		"five days off with no declared flexibility exceeds the default window")

	req.FlexibilityDays = 6
	ev := e.EvaluateTripMatch(context.Background(), domain.MatchDirect, req, trip)
	require.NotNil(t, ev)
	assert.Equal(t, 5, ev.DateDiffDays)
}

func TestEvaluateReturnTripCrossedLegs(t *testing.T) {
	e := newTestEvaluator(nil)

	// The request runs opposite to the trip: its departure sits at the
	// trip's arrival, one day later.
	req := testRequest(2, loc("69001", "Lyon"), loc("75001", "Paris"), evalDate.AddDate(0, 0, 1), 5)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)

	ev := e.EvaluateTripMatch(context.Background(), domain.MatchReturnTrip, req, trip)
	require.NotNil(t, ev)
	assert.Equal(t, 0.0, ev.DepartureLegKm)
	assert.Equal(t, 0.0, ev.ArrivalLegKm)
	assert.Equal(t, 1, ev.DateDiffDays)
}

func TestEvaluateLoopRequiresMultiStop(t *testing.T) {
	e := newTestEvaluator(nil)

	req := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 5)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)

	assert.Nil(t, e.EvaluateTripMatch(context.Background(), domain.MatchLoop, req, trip))

	trip.RouteType = domain.RouteMultiStop
	assert.NotNil(t, e.EvaluateTripMatch(context.Background(), domain.MatchLoop, req, trip))
}

func TestEvaluateLoopEitherLegMaySatisfy(t *testing.T) {
	// Departure leg 200 km, arrival leg 10 km: a circuit can absorb the
	// distant leg as long as one insertion point is close.
	e := newTestEvaluator([]distance.MockPair{
		{From: "45000 orleans", To: "75001 paris", Meters: 200000, Seconds: 7200},
		{From: "69002 lyon", To: "69001 lyon", Meters: 10000, Seconds: 900},
	})

	req := testRequest(1, loc("45000", "Orleans"), loc("69002", "Lyon"), evalDate, 5)
	trip := testTrip(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 10, 0)
	trip.RouteType = domain.RouteMultiStop

	ev := e.EvaluateTripMatch(context.Background(), domain.MatchLoop, req, trip)
	require.NotNil(t, ev)
	assert.Equal(t, 200.0, ev.DepartureLegKm)
	assert.Equal(t, 10.0, ev.ArrivalLegKm)
}

func TestEvaluateClientPairSameRoute(t *testing.T) {
	e := newTestEvaluator(nil)

	a := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 8)
	b := testRequest(2, loc("75011", "Paris"), loc("69003", "Lyon"), evalDate.AddDate(0, 0, 2), 6)

	ev := e.EvaluateClientPair(context.Background(), a, b)
	require.NotNil(t, ev)
	assert.Equal(t, 2, ev.DateDiffDays)
	assert.Equal(t, 14.0, ev.VolumeM3)
	assert.True(t, ev.VolumeCompatible, "14 m3 fits a 20 m3 standard vehicle")
	assert.Equal(t, 6.0, ev.ResidualVolumeM3)
}

func TestEvaluateClientPairOverflowFlagged(t *testing.T) {
	e := newTestEvaluator(nil)

	a := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 14)
	b := testRequest(2, loc("75011", "Paris"), loc("69003", "Lyon"), evalDate, 12)

	ev := e.EvaluateClientPair(context.Background(), a, b)
	require.NotNil(t, ev, "an oversized pair is still reported, flagged for a dedicated carrier")
	assert.False(t, ev.VolumeCompatible)
	assert.Equal(t, 0.0, ev.ResidualVolumeM3)
}

func TestEvaluateClientPairComplementaryChain(t *testing.T) {
	// A drops off where B picks up; the same vehicle can chain the moves.
	e := newTestEvaluator([]distance.MockPair{
		{From: "75001 paris", To: "13001 marseille", Meters: 775000, Seconds: 25000},
		{From: "69001 lyon", To: "69002 lyon", Meters: 5000, Seconds: 600},
	})

	a := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 8)
	b := testRequest(2, loc("69002", "Lyon"), loc("13001", "Marseille"), evalDate.AddDate(0, 0, 3), 6)

	ev := e.EvaluateClientPair(context.Background(), a, b)
	require.NotNil(t, ev)
	assert.Equal(t, 5.0, ev.DepartureLegKm, "chained pairs report the hand-off leg")
	assert.Equal(t, 0.0, ev.ArrivalLegKm)
	assert.Equal(t, 3, ev.DateDiffDays)
}

func TestEvaluateClientPairTooFarApart(t *testing.T) {
	e := newTestEvaluator(nil)

	// Paris->Lyon vs Bordeaux->Toulouse shares nothing; every candidate leg
	// resolves to a large fallback distance.
	a := testRequest(1, loc("75001", "Paris"), loc("69001", "Lyon"), evalDate, 8)
	b := testRequest(2, loc("33000", "Bordeaux"), loc("31000", "Toulouse"), evalDate, 6)

	assert.Nil(t, e.EvaluateClientPair(context.Background(), a, b))
}
