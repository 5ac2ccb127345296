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

func mainRecipe(id string, minutes int, complexity recipe.Complexity, tags ...recipe.DietaryTag) recipe.Recipe {
	return recipe.Recipe{
		ID:          id,
		Kind:        recipe.KindMainCourse,
		Name:        id,
		PrepMinutes: minutes,
		CookMinutes: 0,
		DietaryTags: tags,
		Complexity:  complexity,
	}
}

func TestFilterDietary_KnownAndCustom(t *testing.T) {
	candidates := []recipe.Recipe{
		mainRecipe("vegan-ok", 10, recipe.ComplexitySimple, recipe.Vegan),
		mainRecipe("not-vegan", 10, recipe.ComplexitySimple),
	}
	candidates[1].Ingredients = []recipe.Ingredient{{Name: "Peanut Butter"}}

	restrictions := []recipe.DietaryRestriction{
		recipe.NewKnownRestriction(recipe.Vegan),
		recipe.NewCustomRestriction("Peanut"),
	}
	out := FilterDietary(candidates, restrictions)
	require.Len(t, out, 1)
	assert.Equal(t, "vegan-ok", out[0].ID)
}

func TestFilterDietary_CustomAllergenCaseInsensitive(t *testing.T) {
	peanutButter := mainRecipe("m1", 10, recipe.ComplexitySimple)
	peanutButter.Ingredients = []recipe.Ingredient{{Name: "Peanut Butter"}}
	peanutsLower := mainRecipe("m2", 10, recipe.ComplexitySimple)
	peanutsLower.Ingredients = []recipe.Ingredient{{Name: "peanuts"}}
	clean := mainRecipe("m3", 10, recipe.ComplexitySimple)
	clean.Ingredients = []recipe.Ingredient{{Name: "Flour"}}

	restrictions := []recipe.DietaryRestriction{recipe.NewCustomRestriction("Peanut")}
	out := FilterDietary([]recipe.Recipe{peanutButter, peanutsLower, clean}, restrictions)
	require.Len(t, out, 1)
	assert.Equal(t, "m3", out[0].ID)
}

func TestFilterTime_RespectsBudget(t *testing.T) {
	short := mainRecipe("short", 20, recipe.ComplexitySimple)
	long := mainRecipe("long", 45, recipe.ComplexitySimple)
	out := FilterTime([]recipe.Recipe{short, long}, 30)
	require.Len(t, out, 1)
	assert.Equal(t, "short", out[0].ID)
}

func TestFilterSkill_Levels(t *testing.T) {
	simple := mainRecipe("simple", 10, recipe.ComplexitySimple)
	moderate := mainRecipe("moderate", 10, recipe.ComplexityModerate)
	complex := mainRecipe("complex", 10, recipe.ComplexityComplex)
	all := []recipe.Recipe{simple, moderate, complex}

	assert.Len(t, FilterSkill(all, recipe.SkillBeginner), 1)
	assert.Len(t, FilterSkill(all, recipe.SkillIntermediate), 2)
	assert.Len(t, FilterSkill(all, recipe.SkillAdvanced), 3)
}

func TestFilterConsecutiveComplex_DropsAfterComplexDay(t *testing.T) {
	rot, err := rotation.New(time.Now(), 5)
	require.NoError(t, err)

	day := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	rot.RecordComplexMeal(day, recipe.ComplexityComplex)

	candidates := []recipe.Recipe{
		mainRecipe("simple", 10, recipe.ComplexitySimple),
		mainRecipe("complex", 10, recipe.ComplexityComplex),
	}

	out, relaxed := FilterConsecutiveComplex(candidates, rot, day.AddDate(0, 0, 1), true)
	require.False(t, relaxed)
	require.Len(t, out, 1)
	assert.Equal(t, "simple", out[0].ID)
}

func TestFilterConsecutiveComplex_RelaxesWhenOnlyComplexRemains(t *testing.T) {
	rot, err := rotation.New(time.Now(), 5)
	require.NoError(t, err)

	day := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	rot.RecordComplexMeal(day, recipe.ComplexityComplex)

	candidates := []recipe.Recipe{mainRecipe("only-complex", 10, recipe.ComplexityComplex)}
	out, relaxed := FilterConsecutiveComplex(candidates, rot, day.AddDate(0, 0, 1), true)
	assert.True(t, relaxed)
	assert.Equal(t, candidates, out)
}
