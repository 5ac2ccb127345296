// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package selection

import (
	"sort"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
)

// scoredCandidate pairs a candidate with its cuisine-variety score and
// original index, so a stable sort can break ties by input order.
type scoredCandidate struct {
	recipe recipe.Recipe
	score  float64
	index  int
}

func cuisineKey(c recipe.Recipe) string {
	if c.Cuisine == nil {
		return ""
	}
	return c.Cuisine.Key()
}

// ScoreCuisineVariety computes the variety score for a single candidate:
// variety_weight * (1 / (1 + usage count for its cuisine)).
func ScoreCuisineVariety(c recipe.Recipe, rot *rotation.State, varietyWeight float64) float64 {
	var usage uint32
	if c.Cuisine != nil {
		usage = rot.CuisineCount(*c.Cuisine)
	}
	return varietyWeight * (1.0 / (1.0 + float64(usage)))
}

// SelectByCuisineVariety scores every surviving candidate, picks the
// highest-scoring one (ties broken by input order, i.e. a stable sort), and
// returns it along with ok=false if candidates is empty.
func SelectByCuisineVariety(candidates []recipe.Recipe, rot *rotation.State, varietyWeight float64) (recipe.Recipe, bool) {
	if len(candidates) == 0 {
		return recipe.Recipe{}, false
	}

	scored := make([]scoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = scoredCandidate{
			recipe: c,
			score:  ScoreCuisineVariety(c, rot, varietyWeight),
			index:  i,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	return scored[0].recipe, true
}
