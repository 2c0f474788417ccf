package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/api/dto"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// DecisionHandler records operator accept/reject calls through the sink.
type DecisionHandler struct {
	Sink ports.DecisionSink
}

func (h *DecisionHandler) Record(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DecisionRequest
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

	if strings.TrimSpace(req.Reference) == "" {
		writeError(w, r, http.StatusBadRequest, "reference is required")
		return
	}
	if req.RequestID <= 0 {
		writeError(w, r, http.StatusBadRequest, "request_id is required")
		return
	}

	decision := domain.MatchDecision{
		Reference: req.Reference,
		Type:      domain.MatchType(req.Type),
		RequestID: req.RequestID,
		TripID:    req.TripID,
		Accepted:  req.Accepted,
		DecidedBy: req.DecidedBy,
		Score:     req.Score,
	}

	if err := h.Sink.RecordDecision(r.Context(), decision); err != nil {
		log.Printf("record decision failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DecisionResponse{Reference: req.Reference, Recorded: true})
}
