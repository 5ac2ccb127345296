/*
 * Space Food - Self-Hosted Meal Planning Application
 * Copyright (C) 2025 RGH Software
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published
 * by the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

// Command planner drives the Plan aggregate end to end against a seeded
// in-memory favorites catalog: generate a multi-week batch, print the
// resulting shopping lists, then regenerate the future weeks to show
// locked-week preservation. It exists to exercise internal/plan the way a
// real API handler eventually would, without needing the HTTP/auth surface
// this module leaves out of scope.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rghsoftware/weeklymeals/internal/catalog"
	"github.com/rghsoftware/weeklymeals/internal/clock"
	"github.com/rghsoftware/weeklymeals/internal/config"
	"github.com/rghsoftware/weeklymeals/internal/eventlog"
	"github.com/rghsoftware/weeklymeals/internal/plan"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/snapshot"
	"github.com/rghsoftware/weeklymeals/pkg/logger"
)

const demoUserID = "demo-user"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()
	log.Info().Msg("starting weeklymeals planner demo")

	events, snapshots, closeStores, err := openStores(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stores")
	}
	defer closeStores()

	deps := plan.Dependencies{
		Events:    events,
		Snapshots: snapshots,
		Catalog:   catalog.NewMemoryRecipeCatalog(seedFavorites()),
		Profiles:  catalog.NewMemoryProfileStore(seedProfiles()),
		Clock:     clock.RealClock{},
	}

	ctx := context.Background()

	// Each command gets a fresh RNG seeded from its own request id, so a
	// replayed request id reproduces the same accompaniment choices.
	reqID := eventlog.NewRequestID(time.Now())
	deps.RNG = clock.NewRNGFromString(reqID)
	state, err := plan.New(deps).GenerateMultiWeekPlans(ctx, demoUserID, reqID)
	if err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
	log.Info().Int("weeks", len(state.Weeks)).Msg("generated multi-week plan")
	printPlan(state)

	reqID = eventlog.NewRequestID(time.Now())
	deps.RNG = clock.NewRNGFromString(reqID)
	regenerated, err := plan.New(deps).RegenerateAllFutureWeeks(ctx, demoUserID, reqID)
	if err != nil {
		log.Fatal().Err(err).Msg("regeneration failed")
	}
	log.Info().Int("weeks", len(regenerated.Weeks)).Msg("regenerated future weeks")
	printPlan(regenerated)
}

// openStores builds the event log and snapshot store pair named by
// cfg.Backend. memory is the default so the demo runs with no external
// dependency; sqlite exercises the durable path this module ships.
func openStores(cfg config.StoreConfig) (eventlog.Store, snapshot.Store, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		evs, err := eventlog.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite event log: %w", err)
		}
		if err := evs.EnsureSchema(context.Background()); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate sqlite event log: %w", err)
		}
		snaps, err := snapshot.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite snapshot store: %w", err)
		}
		if err := snaps.EnsureSchema(context.Background()); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate sqlite snapshot store: %w", err)
		}
		return evs, snaps, func() {
			evs.Close()
			snaps.Close()
		}, nil
	case "postgres":
		ctx := context.Background()
		evs, err := eventlog.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres event log: %w", err)
		}
		if err := evs.EnsureSchema(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate postgres event log: %w", err)
		}
		snaps, err := snapshot.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres snapshot store: %w", err)
		}
		if err := snaps.EnsureSchema(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate postgres snapshot store: %w", err)
		}
		return evs, snaps, func() {
			evs.Close()
			snaps.Close()
		}, nil
	default:
		return eventlog.NewMemoryStore(), snapshot.NewMemoryStore(), func() {}, nil
	}
}

func printPlan(state plan.State) {
	for _, w := range state.Weeks {
		fmt.Printf("week %s  %s - %s\n", w.ID, w.StartDate.Format("2006-01-02"), w.EndDate.Format("2006-01-02"))
		list, ok := state.ShoppingLists[w.ID]
		if !ok {
			continue
		}
		fmt.Printf("  shopping list: %d items\n", len(list.Items))
	}
}

func seedFavorites() map[string][]recipe.Recipe {
	favorites := make([]recipe.Recipe, 0, 100)
	favorites = append(favorites, seedKind(recipe.KindAppetizer, 30)...)
	favorites = append(favorites, seedMains(35)...)
	favorites = append(favorites, seedKind(recipe.KindDessert, 30)...)
	return map[string][]recipe.Recipe{demoUserID: favorites}
}

func seedKind(kind recipe.Kind, n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := 0; i < n; i++ {
		out[i] = recipe.Recipe{
			ID:          fmt.Sprintf("%s-%02d", kind, i),
			Kind:        kind,
			Name:        fmt.Sprintf("%s %02d", kind, i),
			Ingredients: []recipe.Ingredient{{Name: "placeholder", Quantity: 1, Unit: "unit"}},
			PrepMinutes: 15,
			CookMinutes: 15,
			Complexity:  recipe.ComplexitySimple,
		}
	}
	return out
}

func seedMains(n int) []recipe.Recipe {
	cuisines := []recipe.KnownCuisine{
		recipe.CuisineItalian, recipe.CuisineMexican, recipe.CuisineChinese,
		recipe.CuisineIndian, recipe.CuisineJapanese,
	}
	out := make([]recipe.Recipe, n)
	for i := 0; i < n; i++ {
		c := recipe.NewKnownCuisine(cuisines[i%len(cuisines)])
		out[i] = recipe.Recipe{
			ID:          fmt.Sprintf("main-%02d", i),
			Kind:        recipe.KindMainCourse,
			Name:        fmt.Sprintf("Main %02d", i),
			Ingredients: []recipe.Ingredient{{Name: "placeholder", Quantity: 1, Unit: "unit"}},
			PrepMinutes: 20,
			CookMinutes: 25,
			Complexity:  recipe.ComplexityModerate,
			Cuisine:     &c,
		}
	}
	return out
}

func seedProfiles() map[string]recipe.UserProfile {
	return map[string]recipe.UserProfile{
		demoUserID: {UserID: demoUserID, Skill: recipe.SkillIntermediate},
	}
}
