package handlers

import (
	"log"
	"net/http"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/api/dto"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/ports"
)

// RecordHandler exposes read-only request and trip retrieval endpoints.
type RecordHandler struct {
	Requests ports.RequestRepository
	Trips    ports.TripRepository
}

func (h *RecordHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requests, err := h.Requests.ListOpenRequests(r.Context())
	if err != nil {
		log.Printf("list requests failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRequestsResponse{Requests: make([]dto.RequestResponse, 0, len(requests))}
	for _, req := range requests {
		res.Requests = append(res.Requests, dto.RequestResponse{
			RequestID:       req.RequestID,
			Departure:       locationResponse(req.Departure),
			Arrival:         locationResponse(req.Arrival),
			DesiredDate:     req.DesiredDate,
			FlexibilityDays: req.FlexibilityDays,
			VolumeM3:        req.VolumeM3,
			Status:          string(req.Status),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RecordHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trips, err := h.Trips.ListAvailableTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripResponse{
			TripID:            t.TripID,
			CarrierName:       t.CarrierName,
			Departure:         locationResponse(t.Departure),
			Arrival:           locationResponse(t.Arrival),
			DepartureDate:     t.DepartureDate,
			MaxVolumeM3:       t.MaxVolumeM3,
			UsedVolumeM3:      t.UsedVolumeM3,
			AvailableVolumeM3: t.AvailableVolumeM3(),
			Status:            string(t.Status),
			RouteType:         string(t.RouteType),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func locationResponse(l domain.Location) dto.LocationResponse {
	return dto.LocationResponse{PostalCode: l.PostalCode, City: l.City}
}
