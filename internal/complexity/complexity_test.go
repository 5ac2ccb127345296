// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		r     recipe.Recipe
		want  float64
	}{
		{
			name: "no ingredients no steps no prep",
			r:    recipe.Recipe{},
			want: 0,
		},
		{
			name: "simple weeknight recipe",
			r: recipe.Recipe{
				Ingredients: make([]recipe.Ingredient, 5),
				Steps:       make([]string, 3),
			},
			want: 0.3*5 + 0.4*3,
		},
		{
			name: "short advance prep adds 50*0.3",
			r: recipe.Recipe{
				Ingredients: make([]recipe.Ingredient, 2),
				Steps:       make([]string, 2),
				AdvancePrep: &recipe.AdvancePrep{Hours: 2},
			},
			want: 0.3*2 + 0.4*2 + 0.3*50,
		},
		{
			name: "long advance prep adds 100*0.3",
			r: recipe.Recipe{
				Ingredients: make([]recipe.Ingredient, 2),
				Steps:       make([]string, 2),
				AdvancePrep: &recipe.AdvancePrep{Hours: 4},
			},
			want: 0.3*2 + 0.4*2 + 0.3*100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.r), 0.0001)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  recipe.Complexity
	}{
		{0, recipe.ComplexitySimple},
		{29.999, recipe.ComplexitySimple},
		{30, recipe.ComplexityModerate},
		{60, recipe.ComplexityModerate},
		{60.001, recipe.ComplexityComplex},
		{200, recipe.ComplexityComplex},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score))
	}
}

func TestOf_ComplexAdvancePrepRecipe(t *testing.T) {
	r := recipe.Recipe{
		Ingredients: make([]recipe.Ingredient, 50),
		Steps:       make([]string, 40),
		AdvancePrep: &recipe.AdvancePrep{Hours: 12},
	}
	// 0.3*50 + 0.4*40 + 0.3*100 = 61, just above the Moderate ceiling.
	assert.Equal(t, recipe.ComplexityComplex, Of(r))
}
