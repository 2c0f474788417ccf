package api

import (
	"net/http"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/api/handlers"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/matching"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	requests ports.RequestRepository,
	trips ports.TripRepository,
	sink ports.DecisionSink,
	aggregator *matching.Aggregator,
	maxCandidates int,
) http.Handler {
	mux := http.NewServeMux()

	recordHandler := &handlers.RecordHandler{Requests: requests, Trips: trips}
	matchHandler := &handlers.MatchHandler{Aggregator: aggregator, MaxCandidates: maxCandidates}
	decisionHandler := &handlers.DecisionHandler{Sink: sink}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/requests", recordHandler.ListRequests)
	mux.HandleFunc("/trips", recordHandler.ListTrips)
	mux.HandleFunc("/matches", matchHandler.Run)
	mux.HandleFunc("/decisions", decisionHandler.Record)

	return loggingMiddleware(mux)
}
