// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package catalog declares the two external, contract-only collaborators
// this subsystem consumes: the recipe catalog and the user
// profile store. Both are read-only from this subsystem's point of view —
// recipe CRUD, favoriting, and profile editing live entirely outside the
// planning/rotation/snapshot core.
package catalog

import (
	"context"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// RecipeCatalog resolves a user's favorited recipes. The core treats the
// result as an opaque, already-validated snapshot-in-time; it never writes
// back.
type RecipeCatalog interface {
	FavoritesOf(ctx context.Context, userID string) ([]recipe.Recipe, error)
}

// UserProfileStore resolves a user's planning profile. Missing
// optional fields take their documented defaults — callers should call
// UserProfile.WithDefaults() on the result before use.
type UserProfileStore interface {
	ProfileOf(ctx context.Context, userID string) (recipe.UserProfile, error)
}
