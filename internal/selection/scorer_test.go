// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
)

func withCuisine(r recipe.Recipe, known recipe.KnownCuisine) recipe.Recipe {
	c := recipe.NewKnownCuisine(known)
	r.Cuisine = &c
	return r
}

func TestSelectByCuisineVariety_PrefersLessUsedCuisine(t *testing.T) {
	rot, err := rotation.New(time.Now(), 10)
	require.NoError(t, err)

	italian := recipe.NewKnownCuisine(recipe.CuisineItalian)
	rot.RecordCuisine(italian)
	rot.RecordCuisine(italian)

	candidates := []recipe.Recipe{
		withCuisine(mainRecipe("italian", 10, recipe.ComplexitySimple), recipe.CuisineItalian),
		withCuisine(mainRecipe("mexican", 10, recipe.ComplexitySimple), recipe.CuisineMexican),
	}

	picked, ok := SelectByCuisineVariety(candidates, rot, 0.7)
	require.True(t, ok)
	assert.Equal(t, "mexican", picked.ID)
}

func TestSelectByCuisineVariety_TiesBreakByInputOrder(t *testing.T) {
	rot, err := rotation.New(time.Now(), 10)
	require.NoError(t, err)

	candidates := []recipe.Recipe{
		mainRecipe("first", 10, recipe.ComplexitySimple),
		mainRecipe("second", 10, recipe.ComplexitySimple),
	}

	picked, ok := SelectByCuisineVariety(candidates, rot, 0.7)
	require.True(t, ok)
	assert.Equal(t, "first", picked.ID)
}

func TestSelectByCuisineVariety_EmptyInput(t *testing.T) {
	rot, err := rotation.New(time.Now(), 10)
	require.NoError(t, err)
	_, ok := SelectByCuisineVariety(nil, rot, 0.7)
	assert.False(t, ok)
}
