// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package week

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rghsoftware/weeklymeals/internal/clock"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
	"github.com/rghsoftware/weeklymeals/internal/snapshot"
)

func simpleRecipe(kind recipe.Kind, id string) recipe.Recipe {
	return recipe.Recipe{
		ID:          id,
		Kind:        kind,
		Name:        id,
		PrepMinutes: 10,
		CookMinutes: 10,
		Complexity:  recipe.ComplexitySimple,
	}
}

func favoritesOf(kind recipe.Kind, n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := 0; i < n; i++ {
		out[i] = simpleRecipe(kind, fmt.Sprintf("%s-%02d", kind, i))
	}
	return out
}

func TestGenerate_FillsExactly21Assignments(t *testing.T) {
	rot, err := rotation.New(time.Now(), 30)
	require.NoError(t, err)

	p := GenerateParams{
		UserID:    "u1",
		BatchID:   uuid.New(),
		StartDate: time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		Appetizers: favoritesOf(recipe.KindAppetizer, 30),
		Mains:      favoritesOf(recipe.KindMainCourse, 30),
		Desserts:   favoritesOf(recipe.KindDessert, 30),
		Profile:    recipe.UserProfile{Skill: recipe.SkillIntermediate}.WithDefaults(),
		Rotation:   rot,
		Snapshots:  snapshot.NewMemoryStore(),
		Clock:      clock.RealClock{},
		RNG:        clock.NewRNG(42),
	}

	w, err := Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, w.Assignments, 21)

	mainIDs := map[string]struct{}{}
	for _, a := range w.Assignments {
		if a.Course == recipe.CourseMainCourse {
			snap, err := p.Snapshots.Get(context.Background(), a.SnapshotID)
			require.NoError(t, err)
			_, dup := mainIDs[snap.OriginalRecipeID]
			assert.False(t, dup, "main course %s reused within one week", snap.OriginalRecipeID)
			mainIDs[snap.OriginalRecipeID] = struct{}{}
		}
	}
}

func TestGenerate_NoSlotFillableWhenMainsExhausted(t *testing.T) {
	rot, err := rotation.New(time.Now(), 2)
	require.NoError(t, err)

	p := GenerateParams{
		UserID:     "u2",
		BatchID:    uuid.New(),
		StartDate:  time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		Appetizers: favoritesOf(recipe.KindAppetizer, 7),
		Mains:      favoritesOf(recipe.KindMainCourse, 2),
		Desserts:   favoritesOf(recipe.KindDessert, 7),
		Profile:    recipe.UserProfile{Skill: recipe.SkillAdvanced}.WithDefaults(),
		Rotation:   rot,
		Snapshots:  snapshot.NewMemoryStore(),
		Clock:      clock.RealClock{},
		RNG:        clock.NewRNG(1),
	}

	_, err = Generate(context.Background(), p)
	require.Error(t, err)
}

func TestGenerate_RelaxesConsecutiveComplexInsteadOfFailing(t *testing.T) {
	rot, err := rotation.New(time.Now(), 7)
	require.NoError(t, err)

	mains := favoritesOf(recipe.KindMainCourse, 7)
	for i := range mains {
		mains[i].Complexity = recipe.ComplexityComplex
	}

	p := GenerateParams{
		UserID:     "u3",
		BatchID:    uuid.New(),
		StartDate:  time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		Appetizers: favoritesOf(recipe.KindAppetizer, 7),
		Mains:      mains,
		Desserts:   favoritesOf(recipe.KindDessert, 7),
		Profile:    recipe.UserProfile{Skill: recipe.SkillAdvanced}.WithDefaults(),
		Rotation:   rot,
		Snapshots:  snapshot.NewMemoryStore(),
		Clock:      clock.RealClock{},
		RNG:        clock.NewRNG(3),
	}

	// Every main is Complex, so from day two onward the consecutive-complex
	// filter would empty the pool; the soft relaxation must kick in and the
	// week still fills completely.
	w, err := Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, w.Assignments, 21)
}
