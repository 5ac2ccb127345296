// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package planning implements the Multi-Week Orchestrator: it reads
// a user's favorites and profile, partitions and dietary-filters them once,
// computes how many weeks can be generated, and drives the Single-Week
// Generator N times over one shared RotationState.
package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/catalog"
	"github.com/rghsoftware/weeklymeals/internal/clock"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
	"github.com/rghsoftware/weeklymeals/internal/selection"
	"github.com/rghsoftware/weeklymeals/internal/snapshot"
	"github.com/rghsoftware/weeklymeals/internal/week"
)

// maxBatchWeeks caps how far ahead one generation may plan.
const maxBatchWeeks = 5

// Result is everything one orchestration run produces: the generated weeks
// and the RotationState they leave behind, ready to be folded into a
// MultiWeekMealPlanGenerated event by the Plan aggregate.
type Result struct {
	BatchID  uuid.UUID
	Weeks    []week.Week
	Rotation *rotation.State
}

// Dependencies bundles the orchestrator's collaborators. The only
// suspension points are catalog/profile reads and event/snapshot writes;
// the algorithmic core itself never blocks.
type Dependencies struct {
	Catalog   catalog.RecipeCatalog
	Profiles  catalog.UserProfileStore
	Snapshots snapshot.Store
	Clock     clock.Clock
	RNG       *clock.RNG
}

// validate checks the inbound profile DTO's struct tags at the
// collaborator boundary.
var validate = validator.New()

// ValidateInputs defensively checks the two read-only inputs where they
// cross the collaborator boundary: the profile's struct tags and each
// favorite's cross-field invariants. The catalog contract promises
// already-validated data, so a violation here is reported as a catalog
// fault rather than a planning error.
func ValidateInputs(profile recipe.UserProfile, favorites []recipe.Recipe) error {
	if err := validate.Struct(profile); err != nil {
		return apperrors.Wrap(apperrors.ExternalCatalogUnavailable, "profile store returned an invalid profile", err)
	}
	for _, r := range favorites {
		if err := r.Validate(); err != nil {
			return apperrors.Wrap(apperrors.ExternalCatalogUnavailable,
				fmt.Sprintf("catalog returned invalid recipe %s", r.ID), err)
		}
	}
	return nil
}

// Generate runs the full multi-week generation for one user.
func Generate(ctx context.Context, deps Dependencies, userID string) (Result, error) {
	profile, err := deps.Profiles.ProfileOf(ctx, userID)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.ExternalCatalogUnavailable, "load user profile", err)
	}

	favorites, err := deps.Catalog.FavoritesOf(ctx, userID)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.ExternalCatalogUnavailable, "load favorites", err)
	}

	if err := ValidateInputs(profile, favorites); err != nil {
		return Result{}, err
	}
	profile = profile.WithDefaults()

	appetizers, mains, desserts, accompaniments := PartitionByKind(favorites)

	appetizers = selection.FilterDietary(appetizers, profile.Restrictions)
	mains = selection.FilterDietary(mains, profile.Restrictions)
	desserts = selection.FilterDietary(desserts, profile.Restrictions)

	maxWeeks := minInt(maxBatchWeeks, len(appetizers), len(mains), len(desserts))
	if maxWeeks < 1 {
		return Result{}, apperrors.InsufficientRecipesErr(len(appetizers), len(mains), len(desserts))
	}

	batchID := uuid.New()

	rot, err := rotation.New(deps.Clock.Now(), len(mains))
	if err != nil {
		return Result{}, err
	}
	rot.SetFavoriteCount(recipe.KindAppetizer, len(appetizers))
	rot.SetFavoriteCount(recipe.KindDessert, len(desserts))

	start := nextMonday(deps.Clock.Now())

	weeks := make([]week.Week, 0, maxWeeks)
	for offset := 0; offset < maxWeeks; offset++ {
		weekStart := start.AddDate(0, 0, 7*offset)

		w, err := week.Generate(ctx, week.GenerateParams{
			UserID:         userID,
			BatchID:        batchID,
			StartDate:      weekStart,
			Appetizers:     appetizers,
			Mains:          mains,
			Desserts:       desserts,
			Accompaniments: accompaniments,
			Profile:        profile,
			Rotation:       rot,
			Snapshots:      deps.Snapshots,
			Clock:          deps.Clock,
			RNG:            deps.RNG,
		})
		if err != nil {
			return Result{}, err
		}
		weeks = append(weeks, w)
	}

	return Result{BatchID: batchID, Weeks: weeks, Rotation: rot}, nil
}

// PartitionByKind splits a flat favorites list into its four kind
// buckets. Exported so the Plan aggregate's regeneration commands can
// repartition favorites without duplicating this loop.
func PartitionByKind(favorites []recipe.Recipe) (appetizers, mains, desserts, accompaniments []recipe.Recipe) {
	for _, r := range favorites {
		switch r.Kind {
		case recipe.KindAppetizer:
			appetizers = append(appetizers, r)
		case recipe.KindMainCourse:
			mains = append(mains, r)
		case recipe.KindDessert:
			desserts = append(desserts, r)
		case recipe.KindAccompaniment:
			accompaniments = append(accompaniments, r)
		}
	}
	return
}

// nextMonday returns today itself when today is already a Monday,
// otherwise the next Monday: generating on a Sunday starts the plan
// tomorrow.
func nextMonday(today time.Time) time.Time {
	y, m, d := today.Date()
	today = time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	wd := int(today.Weekday())
	daysUntilMonday := (8 - wd) % 7
	return today.AddDate(0, 0, daysUntilMonday)
}

func minInt(vs ...int) int {
	min := vs[0]
	for _, v := range vs[1:] {
		if v < min {
			min = v
		}
	}
	return min
}
