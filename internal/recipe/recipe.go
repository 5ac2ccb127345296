// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package recipe holds the read-only input types consumed from the recipe
// catalog and user profile store. Nothing in this
// package writes back to those external collaborators; the planner only
// ever reads an opaque, already-validated snapshot-in-time.
package recipe

// Kind is the closed set of recipe kinds.
type Kind string

const (
	KindAppetizer     Kind = "appetizer"
	KindMainCourse    Kind = "main_course"
	KindDessert       Kind = "dessert"
	KindAccompaniment Kind = "accompaniment"
)

// Course is the subset of Kind that occupies one of the three daily slots.
// MealAssignment.Course uses this narrower type; accompaniments are never a
// course of their own, they ride along with a MainCourse assignment.
type Course string

const (
	CourseAppetizer  Course = "appetizer"
	CourseMainCourse Course = "main_course"
	CourseDessert    Course = "dessert"
)

// AsKind widens a Course back to its matching Kind, for pool lookups.
func (c Course) AsKind() Kind {
	switch c {
	case CourseAppetizer:
		return KindAppetizer
	case CourseMainCourse:
		return KindMainCourse
	case CourseDessert:
		return KindDessert
	}
	return Kind(c)
}

// AccompanimentCategory is the closed set of accompaniment categories.
type AccompanimentCategory string

const (
	AccompanimentPasta     AccompanimentCategory = "pasta"
	AccompanimentRice      AccompanimentCategory = "rice"
	AccompanimentFries     AccompanimentCategory = "fries"
	AccompanimentSalad     AccompanimentCategory = "salad"
	AccompanimentBread     AccompanimentCategory = "bread"
	AccompanimentVegetable AccompanimentCategory = "vegetable"
	AccompanimentOther     AccompanimentCategory = "other"
)

// Complexity is the tertiary category derived by the Complexity Scorer.
// It arrives already set on the catalog's Recipe and selection reads it
// as-is, never recomputing it. It is not copied into the recipe snapshot.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
}

// AdvancePrep describes an advance-preparation requirement (e.g. "marinate
// overnight"); Hours drives the complexity scorer's prep factor.
type AdvancePrep struct {
	Description string
	Hours       float64
}

// Recipe is the read-only input type consumed from the recipe catalog.
// Exactly one of the kind-specific field groups applies, enforced by
// Validate: preferred_accompaniments is non-empty only for a MainCourse
// that AcceptsAccompaniment, and AccompanimentCategory is set only for
// Kind == KindAccompaniment.
type Recipe struct {
	ID          string
	Kind        Kind
	Name        string
	Ingredients []Ingredient
	Steps       []string
	PrepMinutes int
	CookMinutes int
	AdvancePrep *AdvancePrep
	DietaryTags []DietaryTag
	Cuisine     *Cuisine
	Complexity  Complexity

	// MainCourse-only.
	AcceptsAccompaniment bool
	PreferredAccompaniments []AccompanimentCategory

	// Accompaniment-only.
	AccompanimentCategory AccompanimentCategory
}

// TotalMinutes is the combined prep + cook time used by the time
// filter.
func (r Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// HasDietaryTag reports whether the recipe carries the given tag.
func (r Recipe) HasDietaryTag(tag DietaryTag) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate enforces the Recipe field invariants:
//
//	preferred_accompaniments non-empty ⇒ kind = MainCourse ∧ accepts_accompaniment
//	accompaniment_category set ⇒ kind = Accompaniment
func (r Recipe) Validate() error {
	if len(r.PreferredAccompaniments) > 0 {
		if r.Kind != KindMainCourse || !r.AcceptsAccompaniment {
			return errInvalidRecipe("preferred_accompaniments requires kind=MainCourse and accepts_accompaniment")
		}
	}
	if r.AccompanimentCategory != "" && r.Kind != KindAccompaniment {
		return errInvalidRecipe("accompaniment_category requires kind=Accompaniment")
	}
	return nil
}

type invalidRecipeError string

func (e invalidRecipeError) Error() string { return string(e) }

func errInvalidRecipe(msg string) error { return invalidRecipeError(msg) }
