package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MatchType names the consolidation scenario a candidate was produced under.
type MatchType string

const (
	// MatchDirect pairs a request with a trip running the same route.
	MatchDirect MatchType = "direct"
	// MatchReturnTrip places a request on a trip's otherwise-empty return leg.
	MatchReturnTrip MatchType = "return_trip"
	// MatchLoop inserts a request into an existing multi-stop circuit.
	MatchLoop MatchType = "loop"
	// MatchGroupedOutbound consolidates several requests onto one outbound trip.
	MatchGroupedOutbound MatchType = "grouped_outbound"
	// MatchClientToClient pairs two requests sharing or chaining a route
	// without any carrier trip.
	MatchClientToClient MatchType = "client_to_client"
)

// Namespace for deterministic match references. Candidates produced for the
// same participants under the same scenario always carry the same reference,
// so repeated runs over identical inputs are reproducible.
var matchReferenceNamespace = uuid.MustParse("7f1c2ab4-90d3-4c7e-9a6f-5b08c3d41e27")

// NewMatchReference derives a stable reference string from the match type and
// the participating record identifiers.
func NewMatchReference(matchType MatchType, participantIDs ...int) string {
	parts := make([]string, 0, 1+len(participantIDs))
	parts = append(parts, string(matchType))
	for _, id := range participantIDs {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	u := uuid.NewSHA1(matchReferenceNamespace, []byte(strings.Join(parts, ":")))
	return "MTC-" + strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:12])
}

// MatchCandidate is a scored, typed proposal pairing request(s) with a trip,
// or with another request. Created fresh per aggregation run, immutable once
// produced and never persisted by the engine itself.
type MatchCandidate struct {
	Reference string
	Type      MatchType

	// RequestID is the primary participating request. For grouped matches
	// RequestIDs carries the full packed set and RequestID is its first
	// member; for client-to-client matches PartnerRequestID names the
	// second request and TripID stays zero.
	RequestID        int
	PartnerRequestID int
	TripID           int
	RequestIDs       []int

	DepartureLegKm float64
	ArrivalLegKm   float64
	DateDiffDays   int

	// VolumeM3 is the volume the candidate would place on the trip (or the
	// combined volume of both requests for client-to-client matches).
	VolumeM3         float64
	VolumeCompatible bool
	ResidualVolumeM3 float64

	Valid bool
	Score float64
}

// MaxLegKm returns the larger of the two leg distances, the figure the
// distance penalty is charged on.
func (c *MatchCandidate) MaxLegKm() float64 {
	if c.DepartureLegKm > c.ArrivalLegKm {
		return c.DepartureLegKm
	}
	return c.ArrivalLegKm
}

// MatchDecision records the operator's accept/reject call on a candidate.
// Written through the decision sink; the engine itself never persists.
type MatchDecision struct {
	Reference string
	Type      MatchType
	RequestID int
	TripID    int
	Accepted  bool
	DecidedBy string
	Score     float64
}
