package domain

import "time"

// Lifecycle states of a carrier trip eligible for matching.
type TripStatus string

const (
	TripConfirmed  TripStatus = "confirmed"
	TripInProgress TripStatus = "en_cours"
)

// Route shape declared by the carrier. Multi-stop circuits additionally
// qualify for the loop strategy.
type RouteType string

const (
	RouteDirect    RouteType = "direct"
	RouteMultiStop RouteType = "multi_stop"
)

// Represents a scheduled transport run with a fixed departure date and
// finite cargo volume, offered by a carrier. Owned by the data store; the
// engine never mutates it, packing only computes would-be residuals.
type CarrierTrip struct {
	TripID        int
	CarrierName   string
	Departure     Location
	Arrival       Location
	DepartureDate time.Time
	MaxVolumeM3   float64
	UsedVolumeM3  float64
	Status        TripStatus
	RouteType     RouteType
}

// AvailableVolumeM3 returns the remaining cargo volume, never negative.
func (t *CarrierTrip) AvailableVolumeM3() float64 {
	available := t.MaxVolumeM3 - t.UsedVolumeM3
	if available < 0 {
		return 0
	}
	return available
}

// MultiStop reports whether the trip runs a multi-stop circuit.
func (t *CarrierTrip) MultiStop() bool {
	return t.RouteType == RouteMultiStop
}

// Matchable reports whether the trip should enter the matching pass:
// an eligible status, complete locations, remaining capacity and a
// future departure.
func (t *CarrierTrip) Matchable(now time.Time) bool {
	switch t.Status {
	case TripConfirmed, TripInProgress:
	default:
		return false
	}
	if !t.Departure.Complete() || !t.Arrival.Complete() {
		return false
	}
	if t.AvailableVolumeM3() <= 0 {
		return false
	}
	return !t.DepartureDate.Before(truncateToDay(now))
}
