package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// Postgres-backed implementation of the DecisionSink port. Write-only: the
// engine never reads decisions back, the quoting workflow does.
type PostgresDecisionSink struct{ DB *sql.DB }

func NewPostgresDecisionSink(db *sql.DB) *PostgresDecisionSink {
	return &PostgresDecisionSink{DB: db}
}

// Persist one operator decision. Re-deciding the same candidate reference
// overwrites the earlier row: the latest call is authoritative.
func (s *PostgresDecisionSink) RecordDecision(ctx context.Context, d domain.MatchDecision) error {
	if s.DB == nil {
		return errors.New("postgres decision sink: DB is nil")
	}

	query := `
	INSERT INTO match_decisions (
		reference, match_type, request_id, trip_id, accepted, decided_by, score, decided_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	ON CONFLICT (reference) DO UPDATE SET
		accepted = EXCLUDED.accepted,
		decided_by = EXCLUDED.decided_by,
		score = EXCLUDED.score,
		decided_at = NOW();
	`
	_, err := s.DB.ExecContext(
		ctx, query,
		d.Reference, string(d.Type), d.RequestID, d.TripID, d.Accepted, d.DecidedBy, d.Score,
	)
	if err != nil {
		return fmt.Errorf("record decision %q: %w", d.Reference, err)
	}
	return nil
}
