package domain

import "time"

// Lifecycle states of a client request. Only pending, confirmed and quoted
// requests participate in matching.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestConfirmed RequestStatus = "confirmed"
	RequestQuoted    RequestStatus = "quoted"
	RequestMatched   RequestStatus = "matched"
	RequestRejected  RequestStatus = "rejected"
)

// Represents a party seeking transport capacity between two locations
// on or near a desired date. Owned by the data store; the engine only reads it.
type ClientRequest struct {
	RequestID       int
	Departure       Location
	Arrival         Location
	DesiredDate     time.Time
	FlexibilityDays int
	VolumeM3        float64
	Status          RequestStatus
}

// Normalize fills unset optional fields so strategies can assume fully
// populated records. Applied once at ingestion, before any strategy runs.
func (r *ClientRequest) Normalize(defaultVolumeM3 float64) {
	if r.VolumeM3 <= 0 {
		r.VolumeM3 = defaultVolumeM3
	}
	if r.FlexibilityDays < 0 {
		r.FlexibilityDays = 0
	}
}

// Matchable reports whether the request should enter the matching pass:
// an eligible status, complete locations and a future-dated schedule.
// Past-dated records are a hard filter, not a scored penalty.
func (r *ClientRequest) Matchable(now time.Time) bool {
	switch r.Status {
	case RequestPending, RequestConfirmed, RequestQuoted:
	default:
		return false
	}
	if !r.Departure.Complete() || !r.Arrival.Complete() {
		return false
	}
	return !r.DesiredDate.Before(truncateToDay(now))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
