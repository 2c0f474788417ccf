package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/api/dto"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/matching"
)

// MatchHandler runs the matching engine and returns the ranked candidates.
type MatchHandler struct {
	Aggregator *matching.Aggregator
	// MaxCandidates bounds the response when the caller does not provide
	// its own limit.
	MaxCandidates int
}

// Run triggers one full aggregation pass over the current request and trip
// collections.
func (h *MatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.MatchRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		defer r.Body.Close()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}

	limit := req.MaxCandidates
	if limit == 0 {
		limit = h.MaxCandidates
	}
	if limit < 0 || limit > 500 {
		writeError(w, r, http.StatusBadRequest, "max_candidates must be between 1 and 500")
		return
	}

	summary, err := h.Aggregator.FindAllMatches(r.Context())
	if err != nil {
		log.Printf("matching run failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	candidates := summary.Candidates
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	res := dto.MatchRunResponse{
		Candidates:         make([]dto.MatchCandidateResponse, 0, len(candidates)),
		RequestsConsidered: summary.RequestsConsidered,
		TripsConsidered:    summary.TripsConsidered,
		PairsEvaluated:     summary.PairsEvaluated,
		FallbackLookups:    summary.FallbackLookups,
		Degraded:           summary.Degraded,
		Interrupted:        summary.Interrupted,
	}
	for i := range candidates {
		c := &candidates[i]
		res.Candidates = append(res.Candidates, dto.MatchCandidateResponse{
			Reference:        c.Reference,
			Type:             string(c.Type),
			RequestID:        c.RequestID,
			PartnerRequestID: c.PartnerRequestID,
			TripID:           c.TripID,
			RequestIDs:       c.RequestIDs,
			DepartureLegKm:   c.DepartureLegKm,
			ArrivalLegKm:     c.ArrivalLegKm,
			DateDiffDays:     c.DateDiffDays,
			VolumeM3:         c.VolumeM3,
			VolumeCompatible: c.VolumeCompatible,
			ResidualVolumeM3: c.ResidualVolumeM3,
			Valid:            c.Valid,
			Score:            c.Score,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
