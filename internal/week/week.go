// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package week holds the Week/MealAssignment projection types and the
// Single-Week Generator: the algorithm that fills 21 course slots for
// one Mon-Sun span by composing the complexity scorer, selection filters,
// and rotation state.
package week

import (
	"time"

	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

// Status is the closed set of week lifecycle states. Status is always
// a pure function of (start, end, today) — it is never stored as
// independently-settable state, and is recomputed on every load.
type Status string

const (
	StatusFuture   Status = "future"
	StatusCurrent  Status = "current"
	StatusPast     Status = "past"
	StatusArchived Status = "archived"
)

// ComputeStatus derives a week's Status from its span and the current
// date: a week is Current iff today falls in [start, end]; Future if
// today is before start; Past (never auto-Archived — archival is an
// external lifecycle decision outside this subsystem) otherwise.
func ComputeStatus(start, end, today time.Time) Status {
	start = truncateToDay(start)
	end = truncateToDay(end)
	today = truncateToDay(today)

	switch {
	case today.Before(start):
		return StatusFuture
	case today.After(end):
		return StatusPast
	default:
		return StatusCurrent
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsLocked reports whether a week in the given status is immutable under
// replacement and regeneration: true iff status is Current, Past, or
// Archived.
func IsLocked(s Status) bool {
	return s == StatusCurrent || s == StatusPast || s == StatusArchived
}

// MealAssignment maps one (date, course) slot to its primary recipe
// snapshot and, for MainCourse, an optional accompaniment snapshot.
type MealAssignment struct {
	ID                      uuid.UUID
	WeekID                  uuid.UUID
	Date                    time.Time
	Course                  recipe.Course
	SnapshotID              string
	AccompanimentSnapshotID *string
	PrepRequired            bool
}

// Week is the 7-day, 21-assignment projection produced by the generator and
// owned by the Plan aggregate.
type Week struct {
	ID          uuid.UUID
	UserID      string
	BatchID     uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Assignments []MealAssignment
	ShoppingListID *uuid.UUID
}

// Status computes this week's current lifecycle state relative to today.
func (w Week) Status(today time.Time) Status {
	return ComputeStatus(w.StartDate, w.EndDate, today)
}

// IsLocked reports whether w is locked relative to today.
func (w Week) IsLocked(today time.Time) bool {
	return IsLocked(w.Status(today))
}

// AssignmentFor returns the assignment at (date, course), if present —
// used by ReplaceMeal.
func (w Week) AssignmentFor(date time.Time, course recipe.Course) (MealAssignment, bool) {
	for _, a := range w.Assignments {
		if sameDay(a.Date, date) && a.Course == course {
			return a, true
		}
	}
	return MealAssignment{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
