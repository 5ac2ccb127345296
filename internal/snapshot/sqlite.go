// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/migrations"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// SQLiteStore is the durable Store adapter backed by sqlite: a single
// *sql.DB opened once, SetMaxOpenConns(1) since sqlite serializes writers
// anyway.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (but does not migrate) a sqlite-backed snapshot
// store at path. Call EnsureSchema before first use.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// EnsureSchema applies the recipe_snapshots migration if it has not
// already run.
func (s *SQLiteStore) EnsureSchema(_ context.Context) error {
	return migrations.Run(s.db)
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// snapshotPayload is the CBOR-encoded portion of a Snapshot row: everything
// except the columns used for indexing/filtering.
type snapshotPayload struct {
	Name                  string
	Ingredients           []recipe.Ingredient
	Instructions          []string
	DietaryTags           []recipe.DietaryTag
	Cuisine               *recipe.Cuisine
	AccompanimentCategory recipe.AccompanimentCategory
	AdvancePrep           *recipe.AdvancePrep
}

func (s *SQLiteStore) Put(ctx context.Context, snap Snapshot) (string, error) {
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

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recipe_snapshots (id, original_recipe_id, kind, payload, snapshot_at)
		VALUES (?, ?, ?, ?, ?)
	`, snap.ID, snap.OriginalRecipeID, string(snap.Kind), blob, snap.SnapshotAt)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	return snap.ID, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Snapshot, error) {
	var (
		originalID string
		kind       string
		blob       []byte
		snapshotAt time.Time
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT original_recipe_id, kind, payload, snapshot_at
		FROM recipe_snapshots WHERE id = ?
	`, id)
	if err := row.Scan(&originalID, &kind, &blob, &snapshotAt); err != nil {
		if err == sql.ErrNoRows {
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
