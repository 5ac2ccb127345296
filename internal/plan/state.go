// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package plan

import (
	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/rotation"
	"github.com/rghsoftware/weeklymeals/internal/shoppinglist"
	"github.com/rghsoftware/weeklymeals/internal/week"
)

// State is the Plan aggregate's reconstructed state.
// It is never mutated directly by a command handler — every change goes
// through an event's apply so replay from genesis always produces the
// same structure.
type State struct {
	UserID        string
	BatchID       uuid.UUID
	Weeks         []week.Week
	Rotation      *rotation.State
	ShoppingLists map[uuid.UUID]shoppinglist.ShoppingList
	Version       uint64
}

func newState(userID string) State {
	return State{
		UserID:        userID,
		ShoppingLists: make(map[uuid.UUID]shoppinglist.ShoppingList),
	}
}

// weekIndex returns the index of the week with the given id, or -1.
func (s *State) weekIndex(id uuid.UUID) int {
	for i := range s.Weeks {
		if s.Weeks[i].ID == id {
			return i
		}
	}
	return -1
}

// Week returns the week with the given id, if present.
func (s *State) Week(id uuid.UUID) (week.Week, bool) {
	if i := s.weekIndex(id); i >= 0 {
		return s.Weeks[i], true
	}
	return week.Week{}, false
}

// apply folds one decoded event into s. It must not depend on anything
// but the event's own fields, so that replaying the log from genesis is
// deterministic.
func (s *State) apply(evt interface{}) {
	switch e := evt.(type) {
	case MultiWeekMealPlanGenerated:
		s.BatchID = e.BatchID
		s.Weeks = e.Weeks
		s.Rotation = rotation.FromDTO(e.Rotation)

	case SingleWeekRegenerated:
		if i := s.weekIndex(e.WeekID); i >= 0 {
			s.Weeks[i] = e.Week
		}
		s.Rotation = rotation.FromDTO(e.Rotation)

	case AllFutureWeeksRegenerated:
		s.Weeks = e.Weeks
		s.Rotation = rotation.FromDTO(e.Rotation)

	case MealReplaced:
		if i := s.weekIndex(e.WeekID); i >= 0 {
			s.Weeks[i] = e.Week
		}
		s.Rotation = rotation.FromDTO(e.Rotation)

	case ShoppingListGenerated:
		if s.ShoppingLists == nil {
			s.ShoppingLists = make(map[uuid.UUID]shoppinglist.ShoppingList)
		}
		s.ShoppingLists[e.WeekID] = e.List
		if i := s.weekIndex(e.WeekID); i >= 0 {
			id := e.List.ID
			s.Weeks[i].ShoppingListID = &id
		}
	}
}
