package dto

type MatchRunRequest struct {
	MaxCandidates int `json:"max_candidates"`
}

type MatchCandidateResponse struct {
	Reference        string  `json:"reference"`
	Type             string  `json:"type"`
	RequestID        int     `json:"request_id"`
	PartnerRequestID int     `json:"partner_request_id,omitempty"`
	TripID           int     `json:"trip_id,omitempty"`
	RequestIDs       []int   `json:"request_ids,omitempty"`
	DepartureLegKm   float64 `json:"departure_leg_km"`
	ArrivalLegKm     float64 `json:"arrival_leg_km"`
	DateDiffDays     int     `json:"date_diff_days"`
	VolumeM3         float64 `json:"volume_m3"`
	VolumeCompatible bool    `json:"volume_compatible"`
	ResidualVolumeM3 float64 `json:"residual_volume_m3"`
	Valid            bool    `json:"valid"`
	Score            float64 `json:"score"`
}

type MatchRunResponse struct {
	Candidates         []MatchCandidateResponse `json:"candidates"`
	RequestsConsidered int                      `json:"requests_considered"`
	TripsConsidered    int                      `json:"trips_considered"`
	PairsEvaluated     int                      `json:"pairs_evaluated"`
	FallbackLookups    int64                    `json:"fallback_lookups"`
	Degraded           bool                     `json:"degraded"`
	Interrupted        bool                     `json:"interrupted"`
}

type DecisionRequest struct {
	Reference string  `json:"reference"`
	Type      string  `json:"type"`
	RequestID int     `json:"request_id"`
	TripID    int     `json:"trip_id"`
	Accepted  bool    `json:"accepted"`
	DecidedBy string  `json:"decided_by"`
	Score     float64 `json:"score"`
}

type DecisionResponse struct {
	Reference string `json:"reference"`
	Recorded  bool   `json:"recorded"`
}
