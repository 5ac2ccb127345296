// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/migrations"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// PostgresStore is the durable Store adapter backed by PostgreSQL via
// pgxpool, mirroring the eventlog package's own PostgresStore: the same
// CBOR payload shape as SQLiteStore, just a different connection type.
type PostgresStore struct {
	pool       *pgxpool.Pool
	connString string
}

// NewPostgresStore opens (but does not migrate) a connection pool for
// connString. Call EnsureSchema before first use.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres snapshot store: %w", err)
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

func (s *PostgresStore) Put(ctx context.Context, snap Snapshot) (string, error) {
	payload := snapshotPayload{
		Name:                  snap.Name,
		Ingredients:           snap.Ingredients,
		Instructions:          snap.Instructions,
		DietaryTags:           snap.DietaryTags,
		Cuisine:               snap.Cuisine,
		AccompanimentCategory: snap.AccompanimentCategory,
		AdvancePrep:           snap.AdvancePrep,
	}
	blob, err := cbor.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode snapshot payload: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO recipe_snapshots (id, original_recipe_id, kind, payload, snapshot_at)
		VALUES ($1, $2, $3, $4, $5)
	`, snap.ID, snap.OriginalRecipeID, string(snap.Kind), blob, snap.SnapshotAt)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	return snap.ID, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Snapshot, error) {
	var (
		originalID string
		kind       string
		blob       []byte
		snapshotAt time.Time
	)
	row := s.pool.QueryRow(ctx, `
		SELECT original_recipe_id, kind, payload, snapshot_at
		FROM recipe_snapshots WHERE id = $1
	`, id)
	if err := row.Scan(&originalID, &kind, &blob, &snapshotAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, apperrors.SnapshotMissingErr(id)
		}
		return Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}

	var payload snapshotPayload
	if err := cbor.Unmarshal(blob, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot payload: %w", err)
	}

	return Snapshot{
		ID:                    id,
		OriginalRecipeID:      originalID,
		Kind:                  recipe.Kind(kind),
		Name:                  payload.Name,
		Ingredients:           payload.Ingredients,
		Instructions:          payload.Instructions,
		DietaryTags:           payload.DietaryTags,
		Cuisine:               payload.Cuisine,
		AccompanimentCategory: payload.AccompanimentCategory,
		AdvancePrep:           payload.AdvancePrep,
		SnapshotAt:            snapshotAt,
	}, nil
}
