package dto

import "time"

type LocationResponse struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type RequestResponse struct {
	RequestID       int              `json:"request_id"`
	Departure       LocationResponse `json:"departure"`
	Arrival         LocationResponse `json:"arrival"`
	DesiredDate     time.Time        `json:"desired_date"`
	FlexibilityDays int              `json:"flexibility_days"`
	VolumeM3        float64          `json:"volume_m3"`
	Status          string           `json:"status"`
}

type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
}

type TripResponse struct {
	TripID            int              `json:"trip_id"`
	CarrierName       string           `json:"carrier_name"`
	Departure         LocationResponse `json:"departure"`
	Arrival           LocationResponse `json:"arrival"`
	DepartureDate     time.Time        `json:"departure_date"`
	MaxVolumeM3       float64          `json:"max_volume_m3"`
	UsedVolumeM3      float64          `json:"used_volume_m3"`
	AvailableVolumeM3 float64          `json:"available_volume_m3"`
	Status            string           `json:"status"`
	RouteType         string           `json:"route_type"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
