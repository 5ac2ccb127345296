// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package complexity implements the pure Complexity Scorer.
// Selection reads the tier already stored in recipe.Recipe.Complexity and
// never calls this package; snapshot.Snapshot does not carry the tier.
package complexity

import "github.com/rghsoftware/weeklymeals/internal/recipe"

const (
	ingredientWeight = 0.3
	stepWeight       = 0.4
	prepWeight       = 0.3

	prepFactorNone     = 0
	prepFactorShort    = 50
	prepFactorLong     = 100
	shortPrepThreshold = 4 // hours

	simpleUpperBound   = 30
	moderateUpperBound = 60
)

// Score computes complexity(r):
//
//	score = 0.3 * ingredient_count + 0.4 * step_count + 0.3 * prep_factor
//
// with prep_factor 0 (no advance prep), 50 (<4h), or 100 (>=4h).
func Score(r recipe.Recipe) float64 {
	return ingredientWeight*float64(len(r.Ingredients)) +
		stepWeight*float64(len(r.Steps)) +
		prepWeight*prepFactor(r)
}

func prepFactor(r recipe.Recipe) float64 {
	if r.AdvancePrep == nil {
		return prepFactorNone
	}
	if r.AdvancePrep.Hours < shortPrepThreshold {
		return prepFactorShort
	}
	return prepFactorLong
}

// Classify maps a raw score to its Complexity tier:
// < 30 Simple, [30,60] Moderate, > 60 Complex.
func Classify(score float64) recipe.Complexity {
	switch {
	case score < simpleUpperBound:
		return recipe.ComplexitySimple
	case score <= moderateUpperBound:
		return recipe.ComplexityModerate
	default:
		return recipe.ComplexityComplex
	}
}

// Of is the total Complexity function: complexity(r) -> {Simple, Moderate, Complex}.
func Of(r recipe.Recipe) recipe.Complexity {
	return Classify(Score(r))
}
