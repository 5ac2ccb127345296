// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package week

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/clock"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
	"github.com/rghsoftware/weeklymeals/internal/selection"
	"github.com/rghsoftware/weeklymeals/internal/snapshot"
	"github.com/rghsoftware/weeklymeals/pkg/logger"
)

// GenerateParams bundles everything the Single-Week Generator needs.
// StartDate must be a Monday; callers (the orchestrator) are responsible
// for that invariant.
type GenerateParams struct {
	UserID    string
	BatchID   uuid.UUID
	StartDate time.Time

	Appetizers     []recipe.Recipe
	Mains          []recipe.Recipe
	Desserts       []recipe.Recipe
	Accompaniments []recipe.Recipe

	Profile  recipe.UserProfile
	Rotation *rotation.State

	Snapshots snapshot.Store
	Clock     clock.Clock
	RNG       *clock.RNG
}

// Generate fills 21 course slots for one Mon-Sun span, threading
// Rotation State across days and courses. Returns NoSlotFillable if a
// MainCourse slot cannot be filled even after the consecutive-complex
// relaxation.
func Generate(ctx context.Context, p GenerateParams) (Week, error) {
	w := Week{
		ID:        uuid.New(),
		UserID:    p.UserID,
		BatchID:   p.BatchID,
		StartDate: p.StartDate,
		EndDate:   p.StartDate.AddDate(0, 0, 6),
	}

	for offset := 0; offset < 7; offset++ {
		date := p.StartDate.AddDate(0, 0, offset)

		appetizerAssignment, err := fillSimpleCourse(ctx, p, w.ID, date, recipe.KindAppetizer, recipe.CourseAppetizer, p.Appetizers)
		if err != nil {
			return Week{}, err
		}
		w.Assignments = append(w.Assignments, appetizerAssignment)

		mainAssignment, err := fillMainCourse(ctx, p, w.ID, date)
		if err != nil {
			return Week{}, err
		}
		w.Assignments = append(w.Assignments, mainAssignment)

		dessertAssignment, err := fillSimpleCourse(ctx, p, w.ID, date, recipe.KindDessert, recipe.CourseDessert, p.Desserts)
		if err != nil {
			return Week{}, err
		}
		w.Assignments = append(w.Assignments, dessertAssignment)
	}

	return w, nil
}

// fillSimpleCourse handles Appetizer and Dessert slots: build the pool,
// score for cuisine variety, pick the head, mark used, snapshot. The
// filter chain and accompaniment steps are MainCourse-only.
func fillSimpleCourse(
	ctx context.Context,
	p GenerateParams,
	weekID uuid.UUID,
	date time.Time,
	kind recipe.Kind,
	course recipe.Course,
	favorites []recipe.Recipe,
) (MealAssignment, error) {
	pool := poolMinusUsed(favorites, p.Rotation, kind)

	picked, ok := selection.SelectByCuisineVariety(pool, p.Rotation, p.Profile.Variety())
	if !ok {
		return MealAssignment{}, apperrors.NoSlotFillableErr(date, string(course))
	}

	p.Rotation.MarkUsed(kind, picked.ID)
	p.Rotation.RecordCuisine(cuisineOf(picked))

	snapID, err := snapshotRecipe(ctx, p, picked)
	if err != nil {
		return MealAssignment{}, err
	}

	return MealAssignment{
		ID:           uuid.New(),
		WeekID:       weekID,
		Date:         date,
		Course:       course,
		SnapshotID:   snapID,
		PrepRequired: picked.AdvancePrep != nil,
	}, nil
}

// fillMainCourse implements the MainCourse-specific path: dietary,
// time, skill, and consecutive-complex filters, then variety scoring,
// rotation/complexity bookkeeping, and accompaniment selection.
func fillMainCourse(ctx context.Context, p GenerateParams, weekID uuid.UUID, date time.Time) (MealAssignment, error) {
	pool := poolMinusUsed(p.Mains, p.Rotation, recipe.KindMainCourse)

	pool = selection.FilterDietary(pool, p.Profile.Restrictions)
	pool = selection.FilterTime(pool, p.Profile.MaxPrepFor(date.Weekday()))
	pool = selection.FilterSkill(pool, p.Profile.Skill)
	pool, relaxed := selection.FilterConsecutiveComplex(pool, p.Rotation, date, p.Profile.AvoidsConsecutiveComplex())
	if relaxed {
		log := logger.Get()
		log.Warn().
			Str("user_id", p.UserID).
			Str("date", date.Format("2006-01-02")).
			Str("course", string(recipe.CourseMainCourse)).
			Msg("consecutive-complex constraint relaxed")
	}

	picked, ok := selection.SelectByCuisineVariety(pool, p.Rotation, p.Profile.Variety())
	if !ok {
		return MealAssignment{}, apperrors.NoSlotFillableErr(date, string(recipe.CourseMainCourse))
	}

	p.Rotation.MarkUsed(recipe.KindMainCourse, picked.ID)
	p.Rotation.RecordCuisine(cuisineOf(picked))
	p.Rotation.RecordComplexMeal(date, picked.Complexity)

	snapID, err := snapshotRecipe(ctx, p, picked)
	if err != nil {
		return MealAssignment{}, err
	}

	assignment := MealAssignment{
		ID:           uuid.New(),
		WeekID:       weekID,
		Date:         date,
		Course:       recipe.CourseMainCourse,
		SnapshotID:   snapID,
		PrepRequired: picked.AdvancePrep != nil,
	}

	if picked.AcceptsAccompaniment {
		if accompaniment, ok := selection.SelectAccompaniment(picked, p.Accompaniments, p.Profile.Restrictions, p.RNG); ok {
			accSnapID, err := snapshotRecipe(ctx, p, accompaniment)
			if err != nil {
				return MealAssignment{}, err
			}
			assignment.AccompanimentSnapshotID = &accSnapID
		}
	}

	return assignment, nil
}

func poolMinusUsed(favorites []recipe.Recipe, rot *rotation.State, kind recipe.Kind) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(favorites))
	for _, r := range favorites {
		if !rot.IsUsed(kind, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func cuisineOf(r recipe.Recipe) recipe.Cuisine {
	if r.Cuisine == nil {
		return recipe.Cuisine{}
	}
	return *r.Cuisine
}

func snapshotRecipe(ctx context.Context, p GenerateParams, r recipe.Recipe) (string, error) {
	snap := snapshot.FromRecipe(uuid.NewString(), r, p.Clock.Now())
	id, err := p.Snapshots.Put(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("snapshot recipe %s: %w", r.ID, err)
	}
	return id, nil
}
