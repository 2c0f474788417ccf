package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Initialize the Postgres schema for requests, trips and decisions.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRequestsQuery := `
	CREATE TABLE IF NOT EXISTS client_requests (
		request_id SERIAL PRIMARY KEY,
		departure_postal_code TEXT NOT NULL,
		departure_city TEXT NOT NULL,
		arrival_postal_code TEXT NOT NULL,
		arrival_city TEXT NOT NULL,
		desired_date DATE NOT NULL,
		flexibility_days INTEGER NOT NULL DEFAULT 0,
		volume_m3 DOUBLE PRECISION,
		status TEXT NOT NULL DEFAULT 'pending'
	);
	`

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS carrier_trips (
		trip_id SERIAL PRIMARY KEY,
		carrier_name TEXT NOT NULL,
		departure_postal_code TEXT NOT NULL,
		departure_city TEXT NOT NULL,
		arrival_postal_code TEXT NOT NULL,
		arrival_city TEXT NOT NULL,
		departure_date DATE NOT NULL,
		max_volume_m3 DOUBLE PRECISION NOT NULL,
		used_volume_m3 DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'confirmed',
		route_type TEXT NOT NULL DEFAULT 'direct',
		CHECK (used_volume_m3 <= max_volume_m3)
	);
	`

	createDecisionsQuery := `
	CREATE TABLE IF NOT EXISTS match_decisions (
		reference TEXT PRIMARY KEY,
		match_type TEXT NOT NULL,
		request_id INTEGER NOT NULL,
		trip_id INTEGER,
		accepted BOOLEAN NOT NULL,
		decided_by TEXT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		decided_at TIMESTAMPTZ NOT NULL
	);
	`

	for _, q := range []string{createRequestsQuery, createTripsQuery, createDecisionsQuery} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("init schema: create table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

type seedRequest struct {
	DeparturePostalCode string  `json:"departure_postal_code"`
	DepartureCity       string  `json:"departure_city"`
	ArrivalPostalCode   string  `json:"arrival_postal_code"`
	ArrivalCity         string  `json:"arrival_city"`
	DesiredDate         string  `json:"desired_date"`
	FlexibilityDays     int     `json:"flexibility_days"`
	VolumeM3            float64 `json:"volume_m3"`
	Status              string  `json:"status"`
}

type seedTrip struct {
	CarrierName         string  `json:"carrier_name"`
	DeparturePostalCode string  `json:"departure_postal_code"`
	DepartureCity       string  `json:"departure_city"`
	ArrivalPostalCode   string  `json:"arrival_postal_code"`
	ArrivalCity         string  `json:"arrival_city"`
	DepartureDate       string  `json:"departure_date"`
	MaxVolumeM3         float64 `json:"max_volume_m3"`
	UsedVolumeM3        float64 `json:"used_volume_m3"`
	Status              string  `json:"status"`
	RouteType           string  `json:"route_type"`
}

type seedFile struct {
	Requests []seedRequest `json:"requests"`
	Trips    []seedTrip    `json:"trips"`
}

// Seed demo requests and trips from a JSON file. Skipped when the tables
// already hold data, so repeated startups stay idempotent.
func SeedFromJSON(db *sql.DB, path string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM client_requests;`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count client_requests: %w", err)
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var seeds seedFile
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed: parse %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, r := range seeds.Requests {
		desired, err := time.Parse("2006-01-02", r.DesiredDate)
		if err != nil {
			return fmt.Errorf("seed: request %d: parse desired_date %q: %w", i, r.DesiredDate, err)
		}
		status := r.Status
		if status == "" {
			status = "pending"
		}
		_, err = tx.Exec(`
		INSERT INTO client_requests (
			departure_postal_code, departure_city, arrival_postal_code, arrival_city,
			desired_date, flexibility_days, volume_m3, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, r.DeparturePostalCode, r.DepartureCity, r.ArrivalPostalCode, r.ArrivalCity,
			desired, r.FlexibilityDays, nullableVolume(r.VolumeM3), status)
		if err != nil {
			return fmt.Errorf("seed: insert request %d: %w", i, err)
		}
	}

	for i, t := range seeds.Trips {
		departure, err := time.Parse("2006-01-02", t.DepartureDate)
		if err != nil {
			return fmt.Errorf("seed: trip %d: parse departure_date %q: %w", i, t.DepartureDate, err)
		}
		status := t.Status
		if status == "" {
			status = "confirmed"
		}
		routeType := t.RouteType
		if routeType == "" {
			routeType = "direct"
		}
		_, err = tx.Exec(`
		INSERT INTO carrier_trips (
			carrier_name, departure_postal_code, departure_city, arrival_postal_code,
			arrival_city, departure_date, max_volume_m3, used_volume_m3, status, route_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`, t.CarrierName, t.DeparturePostalCode, t.DepartureCity, t.ArrivalPostalCode,
			t.ArrivalCity, departure, t.MaxVolumeM3, t.UsedVolumeM3, status, routeType)
		if err != nil {
			return fmt.Errorf("seed: insert trip %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

func nullableVolume(v float64) any {
	if v <= 0 {
		return nil
	}
	return v
}
