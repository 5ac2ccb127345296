// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package snapshot implements the Recipe Snapshot Store:
// an append-only table of frozen recipe copies, immutable once created and
// independent of the live recipe catalog, so later edits or deletions of a
// source recipe never corrupt a plan in progress.
package snapshot

import (
	"context"
	"time"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// Snapshot is an immutable frozen copy of a recipe at assignment time.
// OriginalRecipeID may dangle if the source recipe is later deleted from
// the catalog — that is expected and observable, never an error.
//
// AdvancePrep is carried on the snapshot because
// MealAssignment.PrepRequired derives from whether the primary snapshot
// carries advance-prep text — a derivation impossible unless the frozen
// copy retains it.
type Snapshot struct {
	ID                    string
	OriginalRecipeID      string
	Kind                  recipe.Kind
	Name                  string
	Ingredients           []recipe.Ingredient
	Instructions          []string
	DietaryTags           []recipe.DietaryTag
	Cuisine               *recipe.Cuisine
	AccompanimentCategory recipe.AccompanimentCategory
	AdvancePrep           *recipe.AdvancePrep
	SnapshotAt            time.Time
}

// HasAdvancePrep reports whether this snapshot carries advance-prep text —
// the sole driver of MealAssignment.PrepRequired.
func (s Snapshot) HasAdvancePrep() bool {
	return s.AdvancePrep != nil
}

// FromRecipe freezes a recipe.Recipe into a new Snapshot. The caller
// supplies id and now so the store (or a deterministic test clock) controls
// id generation and timestamps, keeping this function pure.
func FromRecipe(id string, r recipe.Recipe, now time.Time) Snapshot {
	return Snapshot{
		ID:                    id,
		OriginalRecipeID:      r.ID,
		Kind:                  r.Kind,
		Name:                  r.Name,
		Ingredients:           append([]recipe.Ingredient(nil), r.Ingredients...),
		Instructions:          append([]string(nil), r.Steps...),
		DietaryTags:           append([]recipe.DietaryTag(nil), r.DietaryTags...),
		Cuisine:               r.Cuisine,
		AccompanimentCategory: r.AccompanimentCategory,
		AdvancePrep:           r.AdvancePrep,
		SnapshotAt:            now,
	}
}

// Store is the append-only Snapshot Store port: Put is durable
// before the event referencing the returned id is committed; Get resolves
// a snapshot id to its immutable fields. Snapshots are never deleted by
// this subsystem.
type Store interface {
	Put(ctx context.Context, snap Snapshot) (string, error)
	Get(ctx context.Context, id string) (Snapshot, error)
}
