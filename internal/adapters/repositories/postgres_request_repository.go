package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// Postgres-backed implementation of the RequestRepository port.
type PostgresRequestRepository struct{ DB *sql.DB }

func NewPostgresRequestRepository(db *sql.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{DB: db}
}

// Return all client requests in a matchable lifecycle state. Date and
// completeness filtering is re-applied by the aggregator; the query only
// narrows on status to keep the row set small.
func (s *PostgresRequestRepository) ListOpenRequests(ctx context.Context) ([]*domain.ClientRequest, error) {
	if s.DB == nil {
		return nil, errors.New("postgres request repository: DB is nil")
	}

	query := `
	SELECT
		request_id,
		departure_postal_code,
		departure_city,
		arrival_postal_code,
		arrival_city,
		desired_date,
		flexibility_days,
		volume_m3,
		status
	FROM client_requests
	WHERE status IN ('pending', 'confirmed', 'quoted')
	ORDER BY request_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open requests: query client_requests table: %w", err)
	}
	defer rows.Close()

	requests := make([]*domain.ClientRequest, 0, 64)
	for rows.Next() {
		var (
			r      domain.ClientRequest
			volume sql.NullFloat64
			status string
		)
		err := rows.Scan(
			&r.RequestID,
			&r.Departure.PostalCode,
			&r.Departure.City,
			&r.Arrival.PostalCode,
			&r.Arrival.City,
			&r.DesiredDate,
			&r.FlexibilityDays,
			&volume,
			&status,
		)
		if err != nil {
			return nil, fmt.Errorf("list open requests: scan row: %w", err)
		}
		if volume.Valid {
			r.VolumeM3 = volume.Float64
		}
		r.Status = domain.RequestStatus(status)
		requests = append(requests, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open requests: row iteration: %w", err)
	}

	return requests, nil
}
