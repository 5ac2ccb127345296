// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/migrations"
)

// SQLiteStore persists the event log to a single SQLite file over one
// connection: SQLite's writer lock makes a pool counterproductive.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (but does not migrate) path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite event log: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// EnsureSchema applies the event_log migration if it has not already run.
func (s *SQLiteStore) EnsureSchema(_ context.Context) error {
	return migrations.Run(s.db)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, aggregateID string, expectedVersion uint64, kind string, payload []byte, recordedAt time.Time, meta Meta) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "begin tx", err)
	}
	defer tx.Rollback()

	var current uint64
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM event_log WHERE aggregate_id = ?`, aggregateID)
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

	_, err = tx.ExecContext(ctx, `
INSERT INTO event_log (aggregate_id, version, kind, payload, recorded_at, request_id, user_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.AggregateID, rec.Version, rec.Kind, rec.Payload, rec.RecordedAt, rec.Meta.RequestID, rec.Meta.UserID,
	)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "insert event", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed, "commit tx", err)
	}
	return rec, nil
}

func (s *SQLiteStore) Load(ctx context.Context, aggregateID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT version, kind, payload, recorded_at, request_id, user_id
FROM event_log WHERE aggregate_id = ? ORDER BY version ASC`, aggregateID)
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
