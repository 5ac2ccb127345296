// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package rotation implements the RotationState value object. It tracks which recipes have been consumed since the current
// cycle began, per-course so appetizers and desserts clear independently
// while main courses stay unique for the whole batch, plus cuisine usage
// counts and the date of the last complex meal for the consecutive-complex
// filter.
package rotation

import (
	"time"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// State is the per-user rotation value object. It is embedded in the Plan
// aggregate's state and carried explicitly in every event payload that
// mutates it — callers must never share a mutable reference to
// it across goroutines; thread it as an in/out parameter instead.
type State struct {
	CycleNumber       uint32
	CycleStartedAt    time.Time
	UsedMainCourse    map[string]struct{}
	UsedAppetizer     map[string]struct{}
	UsedDessert       map[string]struct{}
	CuisineUsage      map[string]uint32
	LastComplexMealAt *time.Time

	// favoriteCounts records the per-course favorite count observed at the
	// start of the current cycle, used to decide when a course's used-set
	// should clear. MainCourse's count also gates InvalidRotationState.
	favoriteCounts map[recipe.Kind]int
}

// New constructs a fresh RotationState for a new cycle. totalFavoriteCount
// is the main-course favorite count (mains drive cycle length, since they
// are the scarcest due to the uniqueness constraint) and must
// be > 0 or New returns InvalidRotationState.
func New(now time.Time, totalFavoriteCount int) (*State, error) {
	if totalFavoriteCount <= 0 {
		return nil, apperrors.New(apperrors.InvalidRotationState, "favorite count must be > 0")
	}
	return &State{
		CycleNumber:    1,
		CycleStartedAt: now,
		UsedMainCourse: make(map[string]struct{}),
		UsedAppetizer:  make(map[string]struct{}),
		UsedDessert:    make(map[string]struct{}),
		CuisineUsage:   make(map[string]uint32),
		favoriteCounts: map[recipe.Kind]int{recipe.KindMainCourse: totalFavoriteCount},
	}, nil
}

// SetFavoriteCount records the favorite count for a course, used to decide
// when that course's used-set clears. Appetizer and dessert pools
// are set once per generation by the orchestrator before filling slots.
func (s *State) SetFavoriteCount(kind recipe.Kind, count int) {
	if s.favoriteCounts == nil {
		s.favoriteCounts = make(map[recipe.Kind]int)
	}
	s.favoriteCounts[kind] = count
}

func (s *State) usedSet(kind recipe.Kind) map[string]struct{} {
	switch kind {
	case recipe.KindMainCourse:
		return s.UsedMainCourse
	case recipe.KindAppetizer:
		return s.UsedAppetizer
	case recipe.KindDessert:
		return s.UsedDessert
	default:
		return nil
	}
}

// IsUsed reports whether recipeID has already been consumed this cycle for
// the given course kind.
func (s *State) IsUsed(kind recipe.Kind, recipeID string) bool {
	set := s.usedSet(kind)
	if set == nil {
		return false
	}
	_, ok := set[recipeID]
	return ok
}

// MarkUsed consumes recipeID for the given course kind and, for appetizer
// and dessert, clears the used-set once it reaches the course's favorite
// count (independent per-course clearing).
// MainCourse never auto-clears within a batch: its uniqueness is enforced
// for the whole batch by the caller.
func (s *State) MarkUsed(kind recipe.Kind, recipeID string) {
	set := s.usedSet(kind)
	if set == nil {
		return
	}
	set[recipeID] = struct{}{}

	if kind == recipe.KindMainCourse {
		return
	}
	if count, ok := s.favoriteCounts[kind]; ok && count > 0 && len(set) >= count {
		clearSet(set)
		s.advanceCycle()
	}
}

// Unmark returns recipeID to the pool for the given course kind, used when
// ReplaceMeal swaps an assignment.
func (s *State) Unmark(kind recipe.Kind, recipeID string) {
	set := s.usedSet(kind)
	if set == nil {
		return
	}
	delete(set, recipeID)
}

// MaybeCloseCycle closes the current cycle as soon as the used-set size
// reaches or exceeds the recorded favorite count, or when the count
// shrinks below the used-set size. It operates on the main-course
// used-set, which is what the recorded favorite count tracks across a
// whole batch.
func (s *State) MaybeCloseCycle(currentFavoriteCount int) {
	if currentFavoriteCount < len(s.UsedMainCourse) || len(s.UsedMainCourse) >= currentFavoriteCount {
		clearSet(s.UsedMainCourse)
		s.advanceCycle()
	}
	s.favoriteCounts[recipe.KindMainCourse] = currentFavoriteCount
}

// advanceCycle increments CycleNumber with saturating semantics: at
// math.MaxUint32 it stays there rather than wrapping.
func (s *State) advanceCycle() {
	if s.CycleNumber == ^uint32(0) {
		return
	}
	s.CycleNumber++
}

// RecordCuisine increments the usage counter for a cuisine.
func (s *State) RecordCuisine(c recipe.Cuisine) {
	if s.CuisineUsage == nil {
		s.CuisineUsage = make(map[string]uint32)
	}
	s.CuisineUsage[c.Key()]++
}

// CuisineCount returns the current usage count for a cuisine.
func (s *State) CuisineCount(c recipe.Cuisine) uint32 {
	return s.CuisineUsage[c.Key()]
}

// RecordComplexMeal updates the last-complex-meal date iff the assigned
// recipe was Complex.
func (s *State) RecordComplexMeal(date time.Time, c recipe.Complexity) {
	if c != recipe.ComplexityComplex {
		return
	}
	t := date
	s.LastComplexMealAt = &t
}

// WasComplexDayBefore reports whether the last complex meal fell exactly on the
// day before slotDate — the consecutive-complex relaxation trigger.
func (s *State) WasComplexDayBefore(slotDate time.Time) bool {
	if s.LastComplexMealAt == nil {
		return false
	}
	prev := slotDate.AddDate(0, 0, -1)
	return sameDay(*s.LastComplexMealAt, prev)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Clone returns a deep copy of s, used when the aggregate needs to hand out
// an immutable view (e.g. embedding in an event payload) while continuing
// to mutate its own working copy.
func (s *State) Clone() *State {
	out := &State{
		CycleNumber:    s.CycleNumber,
		CycleStartedAt: s.CycleStartedAt,
		UsedMainCourse: cloneSet(s.UsedMainCourse),
		UsedAppetizer:  cloneSet(s.UsedAppetizer),
		UsedDessert:    cloneSet(s.UsedDessert),
		CuisineUsage:   make(map[string]uint32, len(s.CuisineUsage)),
		favoriteCounts: make(map[recipe.Kind]int, len(s.favoriteCounts)),
	}
	for k, v := range s.CuisineUsage {
		out.CuisineUsage[k] = v
	}
	for k, v := range s.favoriteCounts {
		out.favoriteCounts[k] = v
	}
	if s.LastComplexMealAt != nil {
		t := *s.LastComplexMealAt
		out.LastComplexMealAt = &t
	}
	return out
}

// DTO is the serializable form of State, carried explicitly in every
// event payload that mutates rotation. State itself carries an unexported
// favoriteCounts map, so the Plan aggregate's event payloads embed a DTO
// rather than *State directly.
type DTO struct {
	CycleNumber       uint32
	CycleStartedAt    time.Time
	UsedMainCourse    []string
	UsedAppetizer     []string
	UsedDessert       []string
	CuisineUsage      map[string]uint32
	LastComplexMealAt *time.Time
	FavoriteCounts    map[recipe.Kind]int
}

// ToDTO captures s as a serializable snapshot.
func (s *State) ToDTO() DTO {
	return DTO{
		CycleNumber:       s.CycleNumber,
		CycleStartedAt:    s.CycleStartedAt,
		UsedMainCourse:    setKeys(s.UsedMainCourse),
		UsedAppetizer:     setKeys(s.UsedAppetizer),
		UsedDessert:       setKeys(s.UsedDessert),
		CuisineUsage:      copyCounts(s.CuisineUsage),
		LastComplexMealAt: s.LastComplexMealAt,
		FavoriteCounts:    copyFavoriteCounts(s.favoriteCounts),
	}
}

// FromDTO reconstructs a *State from a DTO, the inverse of ToDTO. Used by
// the Plan aggregate's event handlers to replay rotation state.
func FromDTO(dto DTO) *State {
	return &State{
		CycleNumber:       dto.CycleNumber,
		CycleStartedAt:    dto.CycleStartedAt,
		UsedMainCourse:    setFromKeys(dto.UsedMainCourse),
		UsedAppetizer:     setFromKeys(dto.UsedAppetizer),
		UsedDessert:       setFromKeys(dto.UsedDessert),
		CuisineUsage:      copyCounts(dto.CuisineUsage),
		LastComplexMealAt: dto.LastComplexMealAt,
		favoriteCounts:    copyFavoriteCounts(dto.FavoriteCounts),
	}
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func setFromKeys(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func copyCounts(m map[string]uint32) map[string]uint32 {
	out := make(map[string]uint32, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyFavoriteCounts(m map[recipe.Kind]int) map[recipe.Kind]int {
	out := make(map[recipe.Kind]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func clearSet(m map[string]struct{}) {
	for k := range m {
		delete(m, k)
	}
}
