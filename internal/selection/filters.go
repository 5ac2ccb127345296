// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package selection implements the pure filter and scoring pipeline that
// narrows a course's candidate list down to one pick per slot.
// Every function here is side-effect free; the only state threaded through
// is the caller-owned rotation.State and clock.RNG.
package selection

import (
	"time"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
)

// FilterDietary retains candidates compatible with every restriction in
// restrictions, preserving input order for deterministic tie-breaking
// downstream. An empty result is valid — the caller decides whether
// that is an error.
func FilterDietary(candidates []recipe.Recipe, restrictions []recipe.DietaryRestriction) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(candidates))
	for _, c := range candidates {
		ok := true
		for _, r := range restrictions {
			if !r.Satisfies(c) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// FilterTime retains candidates whose prep+cook minutes fit within
// maxMinutes. Callers choose maxMinutes via profile.MaxPrepFor
// based on the slot's weekday.
func FilterTime(candidates []recipe.Recipe, maxMinutes int) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(candidates))
	for _, c := range candidates {
		if c.TotalMinutes() <= maxMinutes {
			out = append(out, c)
		}
	}
	return out
}

// FilterSkill retains candidates at or below the user's skill ceiling
//: Beginner keeps only Simple, Intermediate keeps Simple and
// Moderate, Advanced keeps everything.
func FilterSkill(candidates []recipe.Recipe, level recipe.SkillLevel) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(candidates))
	for _, c := range candidates {
		switch level {
		case recipe.SkillBeginner:
			if c.Complexity == recipe.ComplexitySimple {
				out = append(out, c)
			}
		case recipe.SkillIntermediate:
			if c.Complexity == recipe.ComplexitySimple || c.Complexity == recipe.ComplexityModerate {
				out = append(out, c)
			}
		default: // Advanced
			out = append(out, c)
		}
	}
	return out
}

// FilterConsecutiveComplex drops Complex candidates when avoidConsecutive
// is set and the rotation recorded a Complex meal the day before
// slotDate. If dropping would empty the list, the caller's pre-filter list
// must be used instead (soft constraint) — this function reports
// that by returning relaxed=true and the untouched input.
func FilterConsecutiveComplex(candidates []recipe.Recipe, rot *rotation.State, slotDate time.Time, avoidConsecutive bool) (result []recipe.Recipe, relaxed bool) {
	if !avoidConsecutive || !rot.WasComplexDayBefore(slotDate) {
		return candidates, false
	}

	out := make([]recipe.Recipe, 0, len(candidates))
	for _, c := range candidates {
		if c.Complexity != recipe.ComplexityComplex {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return candidates, true
	}
	return out, false
}
