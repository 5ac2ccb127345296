// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package recipe

import "strings"

// DietaryTag is the closed set of dietary tags a Recipe may carry.
type DietaryTag string

const (
	Vegetarian DietaryTag = "vegetarian"
	Vegan      DietaryTag = "vegan"
	GlutenFree DietaryTag = "gluten_free"
	DairyFree  DietaryTag = "dairy_free"
	NutFree    DietaryTag = "nut_free"
	Halal      DietaryTag = "halal"
	Kosher     DietaryTag = "kosher"
)

// DietaryRestriction is either one of the known tags, or a Custom allergen
// matched substring-wise (case-insensitive) against ingredient names.
type DietaryRestriction struct {
	Known         DietaryTag
	IsCustom      bool
	CustomAllergen string
}

// NewKnownRestriction builds a restriction on one of the enumerated tags.
func NewKnownRestriction(tag DietaryTag) DietaryRestriction {
	return DietaryRestriction{Known: tag}
}

// NewCustomRestriction builds an opaque allergen restriction.
func NewCustomRestriction(allergen string) DietaryRestriction {
	return DietaryRestriction{IsCustom: true, CustomAllergen: allergen}
}

// Satisfies reports whether r is compatible with the given recipe:
// known restrictions require the matching dietary tag; Custom restrictions
// require that no ingredient name contains the allergen substring
// (case-insensitive).
func (r DietaryRestriction) Satisfies(rec Recipe) bool {
	if r.IsCustom {
		needle := strings.ToLower(r.CustomAllergen)
		if needle == "" {
			return true
		}
		for _, ing := range rec.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), needle) {
				return false
			}
		}
		return true
	}
	for _, tag := range rec.DietaryTags {
		if tag == r.Known {
			return true
		}
	}
	return false
}
