// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/migrations"
)

// PostgresStore persists the event log to PostgreSQL via a pgxpool.Pool.
type PostgresStore struct {
	pool       *pgxpool.Pool
	connString string
}

// NewPostgresStore opens (but does not migrate) a connection pool for connString.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres event log: %w", err)
	}
	return &PostgresStore{pool: pool, connString: connString}, nil
}

// EnsureSchema applies the postgres migrations if they have not already
// run, through a short-lived database/sql connection since golang-migrate
// speaks database/sql rather than pgx's native API.
func (s *PostgresStore) EnsureSchema(_ context.Context) error {
	db, err := sql.Open("pgx", s.connString)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()
	return migrations.RunPostgres(db)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Append mirrors the sqlite adapter's transactional
// read-current-then-insert shape, substituting pgx's tx API for
// database/sql's.
func (s *PostgresStore) Append(ctx context.Context, aggregateID string, expectedVersion uint64, kind string, payload []byte, recordedAt time.Time, meta Meta) (Record, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "begin tx", err)
	}
	defer tx.Rollback(ctx)

	var current uint64
	row := tx.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM event_log WHERE aggregate_id = $1`, aggregateID)
	if err := row.Scan(&current); err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "read current version", err)
	}
	if current != expectedVersion {
		return Record{}, apperrors.New(apperrors.EventAppendFailed, "aggregate version conflict")
	}

	rec := Record{
		AggregateID: aggregateID,
		Version:     expectedVersion + 1,
		Kind:        kind,
		Payload:     payload,
		RecordedAt:  recordedAt,
		Meta:        meta,
	}

	_, err = tx.Exec(ctx, `
INSERT INTO event_log (aggregate_id, version, kind, payload, recorded_at, request_id, user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.AggregateID, rec.Version, rec.Kind, rec.Payload, rec.RecordedAt, rec.Meta.RequestID, rec.Meta.UserID,
	)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "insert event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "commit tx", err)
	}
	return rec, nil
}

func (s *PostgresStore) Load(ctx context.Context, aggregateID string) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
SELECT version, kind, payload, recorded_at, request_id, user_id
FROM event_log WHERE aggregate_id = $1 ORDER BY version ASC`, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("load events for %s: %w", aggregateID, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec := Record{AggregateID: aggregateID}
		if err := rows.Scan(&rec.Version, &rec.Kind, &rec.Payload, &rec.RecordedAt, &rec.Meta.RequestID, &rec.Meta.UserID); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
