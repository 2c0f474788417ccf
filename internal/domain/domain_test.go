package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationKey(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"simple", Location{PostalCode: "75001", City: "Paris"}, "75001 paris"},
		{"extra whitespace", Location{PostalCode: " 69001 ", City: "  Lyon  Cedex "}, "69001 lyon cedex"},
		{"missing city", Location{PostalCode: "13001"}, "13001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.Key())
		})
	}
}

func TestLocationDepartment(t *testing.T) {
	assert.Equal(t, "75", Location{PostalCode: "75001"}.Department())
	assert.Equal(t, "2A", Location{PostalCode: "2A004"}.Department())
	assert.Equal(t, "", Location{PostalCode: "7"}.Department())
	assert.True(t, Location{PostalCode: "75001"}.SameDepartment(Location{PostalCode: "75020"}))
	assert.False(t, Location{PostalCode: "75001"}.SameDepartment(Location{PostalCode: "69001"}))
}

func TestClientRequestNormalize(t *testing.T) {
	r := ClientRequest{RequestID: 1, FlexibilityDays: -2}
	r.Normalize(5)
	assert.Equal(t, 5.0, r.VolumeM3)
	assert.Equal(t, 0, r.FlexibilityDays)

	r2 := ClientRequest{RequestID: 2, VolumeM3: 12}
	r2.Normalize(5)
	assert.Equal(t, 12.0, r2.VolumeM3)
}

func TestClientRequestMatchable(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	base := ClientRequest{
		RequestID:   1,
		Departure:   Location{PostalCode: "75001", City: "Paris"},
		Arrival:     Location{PostalCode: "69001", City: "Lyon"},
		DesiredDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:      RequestPending,
	}

	assert.True(t, base.Matchable(now))

	sameDay := base
	sameDay.DesiredDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, sameDay.Matchable(now), "a request desired today is still matchable")

	past := base
	past.DesiredDate = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	assert.False(t, past.Matchable(now))

	rejected := base
	rejected.Status = RequestRejected
	assert.False(t, rejected.Matchable(now))

	incomplete := base
	incomplete.Arrival = Location{}
	assert.False(t, incomplete.Matchable(now))
}

func TestCarrierTripAvailableVolume(t *testing.T) {
	trip := CarrierTrip{MaxVolumeM3: 30, UsedVolumeM3: 12}
	assert.Equal(t, 18.0, trip.AvailableVolumeM3())

	overbooked := CarrierTrip{MaxVolumeM3: 10, UsedVolumeM3: 14}
	assert.Equal(t, 0.0, overbooked.AvailableVolumeM3(), "available volume never goes negative")
}

func TestCarrierTripMatchable(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	base := CarrierTrip{
		TripID:        7,
		CarrierName:   "Transports Morel",
		Departure:     Location{PostalCode: "75012", City: "Paris"},
		Arrival:       Location{PostalCode: "69002", City: "Lyon"},
		DepartureDate: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		MaxVolumeM3:   30,
		UsedVolumeM3:  10,
		Status:        TripConfirmed,
	}

	assert.True(t, base.Matchable(now))

	full := base
	full.UsedVolumeM3 = 30
	assert.False(t, full.Matchable(now))

	departed := base
	departed.DepartureDate = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	assert.False(t, departed.Matchable(now))

	inProgress := base
	inProgress.Status = TripInProgress
	assert.True(t, inProgress.Matchable(now))
}

func TestNewMatchReferenceDeterministic(t *testing.T) {
	a := NewMatchReference(MatchDirect, 3, 12)
	b := NewMatchReference(MatchDirect, 3, 12)
	require.Equal(t, a, b, "same participants must always produce the same reference")

	c := NewMatchReference(MatchReturnTrip, 3, 12)
	assert.NotEqual(t, a, c, "match type participates in the reference")

	d := NewMatchReference(MatchDirect, 12, 3)
	assert.NotEqual(t, a, d, "participant order participates in the reference")

	assert.Regexp(t, `^MTC-[0-9A-F]{12}$`, a)
}

func TestMatchCandidateMaxLegKm(t *testing.T) {
	c := MatchCandidate{DepartureLegKm: 12, ArrivalLegKm: 40}
	assert.Equal(t, 40.0, c.MaxLegKm())
	c = MatchCandidate{DepartureLegKm: 55, ArrivalLegKm: 8}
	assert.Equal(t, 55.0, c.MaxLegKm())
}
