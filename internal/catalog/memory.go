// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package catalog

import (
	"context"
	"fmt"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// MemoryRecipeCatalog is a fixed, in-process RecipeCatalog used by
// cmd/planner's demo mode and by orchestrator tests that need a real
// (non-mocked) collaborator.
type MemoryRecipeCatalog struct {
	favorites map[string][]recipe.Recipe
}

// NewMemoryRecipeCatalog builds a catalog pre-seeded with one user's
// favorites.
func NewMemoryRecipeCatalog(favorites map[string][]recipe.Recipe) *MemoryRecipeCatalog {
	return &MemoryRecipeCatalog{favorites: favorites}
}

func (c *MemoryRecipeCatalog) FavoritesOf(_ context.Context, userID string) ([]recipe.Recipe, error) {
	recipes, ok := c.favorites[userID]
	if !ok {
		return nil, fmt.Errorf("no favorites known for user %s", userID)
	}
	return recipes, nil
}

// MemoryProfileStore is a fixed, in-process UserProfileStore counterpart.
type MemoryProfileStore struct {
	profiles map[string]recipe.UserProfile
}

func NewMemoryProfileStore(profiles map[string]recipe.UserProfile) *MemoryProfileStore {
	return &MemoryProfileStore{profiles: profiles}
}

func (s *MemoryProfileStore) ProfileOf(_ context.Context, userID string) (recipe.UserProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return recipe.UserProfile{}, fmt.Errorf("no profile known for user %s", userID)
	}
	return profile.WithDefaults(), nil
}
