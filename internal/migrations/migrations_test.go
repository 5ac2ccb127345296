// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func TestRun_CreatesTablesAndIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Run(db))
	require.NoError(t, Run(db), "re-running against an already-migrated db must be a no-op")

	var name string
	row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='event_log'`)
	require.NoError(t, row.Scan(&name))
	require.Equal(t, "event_log", name)

	row = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='recipe_snapshots'`)
	require.NoError(t, row.Scan(&name))
	require.Equal(t, "recipe_snapshots", name)
}
