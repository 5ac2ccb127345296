// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package selection

import (
	"github.com/rghsoftware/weeklymeals/internal/clock"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// SelectAccompaniment picks a side dish for a main course. It is only
// ever called when the
// selected main's AcceptsAccompaniment is true. Returns ok=false (not an
// error) when no survivor remains — the slot simply gets no accompaniment.
func SelectAccompaniment(
	main recipe.Recipe,
	favorites []recipe.Recipe,
	restrictions []recipe.DietaryRestriction,
	rng *clock.RNG,
) (recipe.Recipe, bool) {
	survivors := favorites

	if len(main.PreferredAccompaniments) > 0 {
		allowed := make(map[recipe.AccompanimentCategory]struct{}, len(main.PreferredAccompaniments))
		for _, cat := range main.PreferredAccompaniments {
			allowed[cat] = struct{}{}
		}
		filtered := make([]recipe.Recipe, 0, len(survivors))
		for _, a := range survivors {
			if _, ok := allowed[a.AccompanimentCategory]; ok {
				filtered = append(filtered, a)
			}
		}
		survivors = filtered
	}

	survivors = FilterDietary(survivors, restrictions)

	if len(survivors) == 0 {
		return recipe.Recipe{}, false
	}

	return survivors[rng.Intn(len(survivors))], true
}
