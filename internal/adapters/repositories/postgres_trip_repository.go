package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// Postgres-backed implementation of the TripRepository port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// Return all carrier trips with remaining capacity in a matchable state.
func (s *PostgresTripRepository) ListAvailableTrips(ctx context.Context) ([]*domain.CarrierTrip, error) {
	if s.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		carrier_name,
		departure_postal_code,
		departure_city,
		arrival_postal_code,
		arrival_city,
		departure_date,
		max_volume_m3,
		used_volume_m3,
		status,
		route_type
	FROM carrier_trips
	WHERE status IN ('confirmed', 'en_cours')
		AND max_volume_m3 > used_volume_m3
	ORDER BY trip_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list available trips: query carrier_trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.CarrierTrip, 0, 64)
	for rows.Next() {
		var (
			t         domain.CarrierTrip
			status    string
			routeType sql.NullString
		)
		err := rows.Scan(
			&t.TripID,
			&t.CarrierName,
			&t.Departure.PostalCode,
			&t.Departure.City,
			&t.Arrival.PostalCode,
			&t.Arrival.City,
			&t.DepartureDate,
			&t.MaxVolumeM3,
			&t.UsedVolumeM3,
			&status,
			&routeType,
		)
		if err != nil {
			return nil, fmt.Errorf("list available trips: scan row: %w", err)
		}
		t.Status = domain.TripStatus(status)
		t.RouteType = domain.RouteDirect
		if routeType.Valid && routeType.String != "" {
			t.RouteType = domain.RouteType(routeType.String)
		}
		trips = append(trips, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list available trips: row iteration: %w", err)
	}

	return trips, nil
}
