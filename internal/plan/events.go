// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package plan implements the Plan aggregate: the
// event-sourced entity that owns a user's batch of weeks, their lock
// state, and the rotation state at time of generation. Commands are
// validated and executed here; the resulting events are the only thing
// ever appended to the event log, and replaying them from genesis must
// reconstruct identical state.
package plan

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
	"github.com/rghsoftware/weeklymeals/internal/shoppinglist"
	"github.com/rghsoftware/weeklymeals/internal/week"
)

// Event kind tags. These are the eventlog.Record.Kind values
// stored alongside each CBOR-encoded payload.
const (
	KindMultiWeekMealPlanGenerated = "multi_week_meal_plan_generated"
	KindSingleWeekRegenerated      = "single_week_regenerated"
	KindAllFutureWeeksRegenerated  = "all_future_weeks_regenerated"
	KindMealReplaced               = "meal_replaced"
	KindShoppingListGenerated      = "shopping_list_generated"
)

// MultiWeekMealPlanGenerated is emitted by GenerateMultiWeekPlans.
// Weeks is the complete final batch — any preserved
// locked week plus the newly generated unlocked ones — so apply can
// replace state.Weeks wholesale without consulting anything but the event.
type MultiWeekMealPlanGenerated struct {
	BatchID  uuid.UUID
	Weeks    []week.Week
	Rotation rotation.DTO
}

// SingleWeekRegenerated is emitted by RegenerateSingleWeek.
type SingleWeekRegenerated struct {
	WeekID   uuid.UUID
	Week     week.Week
	Rotation rotation.DTO
}

// AllFutureWeeksRegenerated is emitted by RegenerateAllFutureWeeks.
// Weeks is the complete final set: locked weeks carried over
// byte-identical, unlocked weeks replaced.
type AllFutureWeeksRegenerated struct {
	Weeks    []week.Week
	Rotation rotation.DTO
}

// MealReplaced is emitted by ReplaceMeal. It carries both the
// narrow (date, course, old/new snapshot id) audit fields and the full
// updated Week, so apply needs no side lookups.
type MealReplaced struct {
	WeekID        uuid.UUID
	Date          time.Time
	Course        recipe.Course
	OldSnapshotID string
	NewSnapshotID string
	Week          week.Week
	Rotation      rotation.DTO
}

// ShoppingListGenerated is emitted whenever a week's assignments are
// created or changed.
type ShoppingListGenerated struct {
	WeekID uuid.UUID
	List   shoppinglist.ShoppingList
}

// eventEncMode writes time.Time values as RFC 3339 text rather than Unix
// seconds, so a UTC timestamp decodes back as UTC (not the local zone) and
// replayed weeks compare equal to the live ones.
var eventEncMode = mustEventEncMode()

func mustEventEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// encode CBOR-encodes an event payload, the same codec the snapshot store
// uses for its durable blobs, so events stay decodable across schema
// versions.
func encode(kind string, v interface{}) (string, []byte, error) {
	blob, err := eventEncMode.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s event: %w", kind, err)
	}
	return kind, blob, nil
}

// decode reverses encode, dispatching on the record's Kind tag. Unknown
// kinds are surfaced as an error rather than silently skipped, so a
// forward-incompatible record fails loudly during replay instead of
// silently losing history — handlers "tolerate unknown optional fields"
// within a known kind, not unknown kinds themselves.
func decode(kind string, payload []byte) (interface{}, error) {
	switch kind {
	case KindMultiWeekMealPlanGenerated:
		var e MultiWeekMealPlanGenerated
		if err := cbor.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return e, nil
	case KindSingleWeekRegenerated:
		var e SingleWeekRegenerated
		if err := cbor.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return e, nil
	case KindAllFutureWeeksRegenerated:
		var e AllFutureWeeksRegenerated
		if err := cbor.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return e, nil
	case KindMealReplaced:
		var e MealReplaced
		if err := cbor.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return e, nil
	case KindShoppingListGenerated:
		var e ShoppingListGenerated
		if err := cbor.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("plan: unknown event kind %q", kind)
	}
}
