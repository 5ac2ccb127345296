// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package plan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/catalog"
	"github.com/rghsoftware/weeklymeals/internal/clock"
	"github.com/rghsoftware/weeklymeals/internal/eventlog"
	"github.com/rghsoftware/weeklymeals/internal/planning"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/rotation"
	"github.com/rghsoftware/weeklymeals/internal/selection"
	"github.com/rghsoftware/weeklymeals/internal/shoppinglist"
	"github.com/rghsoftware/weeklymeals/internal/snapshot"
	"github.com/rghsoftware/weeklymeals/internal/week"
	"github.com/rghsoftware/weeklymeals/pkg/logger"
)

// ErrWeekNotFound is returned when a command addresses a week id that does
// not belong to the loaded plan. The apperrors taxonomy has no code for
// this case (every code assumes the week already resolved), so it is a
// plain per-package sentinel.
var ErrWeekNotFound = errors.New("plan: week not found")

// validate is the shared struct validator for command inputs. Commands are
// the subsystem's only entry point from the outside world, so this is
// where defensive parsing of caller-supplied ids belongs.
var validate = validator.New()

// baseCommandRequest is the pair every command takes: the plan
// owner and the caller-supplied request id used for idempotency/audit.
type baseCommandRequest struct {
	UserID    string `validate:"required"`
	RequestID string `validate:"required"`
}

func validateBaseCommand(userID, requestID string) error {
	if err := validate.Struct(baseCommandRequest{UserID: userID, RequestID: requestID}); err != nil {
		return fmt.Errorf("plan: invalid command: %w", err)
	}
	return nil
}

// replaceMealRequest additionally validates ReplaceMeal's extra fields: a
// well-formed week id, a known course, and a non-empty replacement snapshot
// id.
type replaceMealRequest struct {
	baseCommandRequest
	WeekID        string `validate:"required,uuid"`
	Course        string `validate:"required,oneof=appetizer main_course dessert"`
	NewSnapshotID string `validate:"required"`
}

func validateReplaceMeal(userID string, weekID uuid.UUID, course recipe.Course, newSnapshotID, requestID string) error {
	req := replaceMealRequest{
		baseCommandRequest: baseCommandRequest{UserID: userID, RequestID: requestID},
		WeekID:             weekID.String(),
		Course:             string(course),
		NewSnapshotID:      newSnapshotID,
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("plan: invalid request: %w", err)
	}
	return nil
}

// commandDeadline is the soft per-command deadline: past it the command
// is considered failed and no partial state is persisted.
const commandDeadline = 10 * time.Second

// Dependencies bundles everything a command handler needs: the event log
// it is the single writer for, the snapshot store it reads and writes
// through, the two read-only external collaborators, and the
// seedable clock/RNG pair that keep generation and replay deterministic.
type Dependencies struct {
	Events    eventlog.Store
	Snapshots snapshot.Store
	Catalog   catalog.RecipeCatalog
	Profiles  catalog.UserProfileStore
	Clock     clock.Clock
	RNG       *clock.RNG
}

// Aggregate is the Plan aggregate's command handler. One
// Aggregate value is stateless and safe to share; all state lives in the
// event log and is rehydrated fresh on every command — commands never
// read projections.
type Aggregate struct {
	deps Dependencies
}

// New constructs an Aggregate over the given collaborators.
func New(deps Dependencies) *Aggregate {
	return &Aggregate{deps: deps}
}

// Load rehydrates a user's Plan state by replaying their event log from
// genesis. Every mutation path in this package calls Load
// first; none of them consult a projection.
func (a *Aggregate) Load(ctx context.Context, userID string) (State, error) {
	records, err := a.deps.Events.Load(ctx, userID)
	if err != nil {
		return State{}, fmt.Errorf("load plan %s: %w", userID, err)
	}
	st := newState(userID)
	for _, rec := range records {
		evt, err := decode(rec.Kind, rec.Payload)
		if err != nil {
			return State{}, fmt.Errorf("replay plan %s at v%d: %w", userID, rec.Version, err)
		}
		st.apply(evt)
		st.Version = rec.Version
	}
	return st, nil
}

func withCommandDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, commandDeadline)
}

// asTimeout converts a deadline-exceeded error into the AlgorithmTimeout
// code so callers can branch on apperrors.Is rather than
// context.DeadlineExceeded.
func asTimeout(ctx context.Context, err error) error {
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return apperrors.Wrap(apperrors.AlgorithmTimeout, "command deadline exceeded", err)
	}
	return err
}

func (a *Aggregate) appendEvent(ctx context.Context, userID string, expectedVersion uint64, kind string, payload []byte, requestID string) (eventlog.Record, error) {
	now := a.deps.Clock.Now()
	rec, err := a.deps.Events.Append(ctx, userID, expectedVersion, kind, payload, now, eventlog.Meta{RequestID: requestID, UserID: userID})
	if err != nil {
		return eventlog.Record{}, err
	}
	return rec, nil
}

// emitShoppingList derives and appends a ShoppingListGenerated event for w,
// folding it into st as it goes.
func (a *Aggregate) emitShoppingList(ctx context.Context, st *State, w week.Week, requestID string) error {
	list, err := shoppinglist.Derive(ctx, w, a.deps.Snapshots, a.deps.Clock.Now())
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).
			Str("user_id", st.UserID).
			Str("week_id", w.ID.String()).
			Msg("shopping list derivation failed")
		return err
	}
	kind, blob, err := encode(KindShoppingListGenerated, ShoppingListGenerated{WeekID: w.ID, List: list})
	if err != nil {
		return err
	}
	rec, err := a.appendEvent(ctx, st.UserID, st.Version, kind, blob, requestID)
	if err != nil {
		return apperrors.Wrap(apperrors.EventAppendFailed, "append shopping list event", err)
	}
	st.apply(ShoppingListGenerated{WeekID: w.ID, List: list})
	st.Version = rec.Version
	return nil
}

// GenerateMultiWeekPlans runs the Multi-Week Orchestrator and
// commits its result, replacing any prior unlocked weeks while leaving an
// already-locked current week's assignments byte-identical.
func (a *Aggregate) GenerateMultiWeekPlans(ctx context.Context, userID, requestID string) (State, error) {
	if err := validateBaseCommand(userID, requestID); err != nil {
		return State{}, err
	}
	ctx, cancel := withCommandDeadline(ctx)
	defer cancel()

	st, err := a.Load(ctx, userID)
	if err != nil {
		return State{}, err
	}

	today := a.deps.Clock.Now()
	preserved := make([]week.Week, 0, len(st.Weeks))
	for _, w := range st.Weeks {
		if w.IsLocked(today) {
			preserved = append(preserved, w)
		}
	}

	result, err := planning.Generate(ctx, planning.Dependencies{
		Catalog:   a.deps.Catalog,
		Profiles:  a.deps.Profiles,
		Snapshots: a.deps.Snapshots,
		Clock:     a.deps.Clock,
		RNG:       a.deps.RNG,
	}, userID)
	if err != nil {
		return State{}, asTimeout(ctx, err)
	}

	finalWeeks := mergePreservingLocked(preserved, result.Weeks)

	payload := MultiWeekMealPlanGenerated{BatchID: result.BatchID, Weeks: finalWeeks, Rotation: result.Rotation.ToDTO()}
	kind, blob, err := encode(KindMultiWeekMealPlanGenerated, payload)
	if err != nil {
		return State{}, err
	}
	rec, err := a.appendEvent(ctx, userID, st.Version, kind, blob, requestID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.EventAppendFailed, "append generation event", err)
	}
	st.apply(payload)
	st.Version = rec.Version

	for _, w := range result.Weeks {
		if err := a.emitShoppingList(ctx, &st, w, requestID); err != nil {
			return State{}, err
		}
	}

	return st, nil
}

// mergePreservingLocked combines a preserved set of locked weeks with a
// freshly generated set, dropping any generated week whose start date
// collides with a preserved one (the locked week always wins) and
// returning the result sorted by start date.
func mergePreservingLocked(preserved, generated []week.Week) []week.Week {
	taken := make(map[time.Time]bool, len(preserved))
	for _, w := range preserved {
		taken[truncateToDay(w.StartDate)] = true
	}

	out := append([]week.Week{}, preserved...)
	for _, w := range generated {
		if taken[truncateToDay(w.StartDate)] {
			continue
		}
		out = append(out, w)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// loadFilteredFavorites re-reads and dietary-filters a user's favorites,
// the same read-and-filter steps the orchestrator runs, for use by the
// two regeneration commands below.
func (a *Aggregate) loadFilteredFavorites(ctx context.Context, userID string) (recipe.UserProfile, []recipe.Recipe, []recipe.Recipe, []recipe.Recipe, []recipe.Recipe, error) {
	profile, err := a.deps.Profiles.ProfileOf(ctx, userID)
	if err != nil {
		return recipe.UserProfile{}, nil, nil, nil, nil, apperrors.Wrap(apperrors.ExternalCatalogUnavailable, "load user profile", err)
	}

	favorites, err := a.deps.Catalog.FavoritesOf(ctx, userID)
	if err != nil {
		return recipe.UserProfile{}, nil, nil, nil, nil, apperrors.Wrap(apperrors.ExternalCatalogUnavailable, "load favorites", err)
	}

	if err := planning.ValidateInputs(profile, favorites); err != nil {
		return recipe.UserProfile{}, nil, nil, nil, nil, err
	}
	profile = profile.WithDefaults()

	appetizers, mains, desserts, accompaniments := planning.PartitionByKind(favorites)
	appetizers = selection.FilterDietary(appetizers, profile.Restrictions)
	mains = selection.FilterDietary(mains, profile.Restrictions)
	desserts = selection.FilterDietary(desserts, profile.Restrictions)
	return profile, appetizers, mains, desserts, accompaniments, nil
}

// freeWeekRotation returns every assignment in w's primary recipe to the
// rotation pool, so regenerating that week can draw on the full favorites
// set again. Accompaniments never participate in rotation and are
// left alone.
func (a *Aggregate) freeWeekRotation(ctx context.Context, rot *rotation.State, w week.Week) error {
	for _, asn := range w.Assignments {
		snap, err := a.deps.Snapshots.Get(ctx, asn.SnapshotID)
		if err != nil {
			return apperrors.Wrap(apperrors.SnapshotMissing, "free rotation slot", err)
		}
		rot.Unmark(asn.Course.AsKind(), snap.OriginalRecipeID)
	}
	return nil
}

// regenerateWeek rebuilds w's 21 assignments in place: it frees w's own
// contribution to the rotation pool, then reruns the Single-Week
// Generator over the same start date with the now-freed rotation state,
// keeping w's id and batch id stable.
func (a *Aggregate) regenerateWeek(
	ctx context.Context,
	rot *rotation.State,
	userID string,
	profile recipe.UserProfile,
	appetizers, mains, desserts, accompaniments []recipe.Recipe,
	w week.Week,
) (week.Week, error) {
	if err := a.freeWeekRotation(ctx, rot, w); err != nil {
		return week.Week{}, err
	}

	newWeek, err := week.Generate(ctx, week.GenerateParams{
		UserID:         userID,
		BatchID:        w.BatchID,
		StartDate:      w.StartDate,
		Appetizers:     appetizers,
		Mains:          mains,
		Desserts:       desserts,
		Accompaniments: accompaniments,
		Profile:        profile,
		Rotation:       rot,
		Snapshots:      a.deps.Snapshots,
		Clock:          a.deps.Clock,
		RNG:            a.deps.RNG,
	})
	if err != nil {
		return week.Week{}, err
	}

	newWeek.ID = w.ID
	newWeek.BatchID = w.BatchID
	for i := range newWeek.Assignments {
		newWeek.Assignments[i].WeekID = w.ID
	}
	return newWeek, nil
}

// RegenerateSingleWeek rebuilds one unlocked week's assignments.
// Fails with WeekLocked if the week is locked; fails with ErrWeekNotFound
// if weekID does not belong to userID's plan.
func (a *Aggregate) RegenerateSingleWeek(ctx context.Context, userID string, weekID uuid.UUID, requestID string) (State, error) {
	if err := validateBaseCommand(userID, requestID); err != nil {
		return State{}, err
	}
	ctx, cancel := withCommandDeadline(ctx)
	defer cancel()

	st, err := a.Load(ctx, userID)
	if err != nil {
		return State{}, err
	}

	w, ok := st.Week(weekID)
	if !ok {
		return State{}, ErrWeekNotFound
	}
	today := a.deps.Clock.Now()
	if w.IsLocked(today) {
		return State{}, apperrors.WeekLockedErr(w.ID.String())
	}

	profile, appetizers, mains, desserts, accompaniments, err := a.loadFilteredFavorites(ctx, userID)
	if err != nil {
		return State{}, err
	}

	rot := st.Rotation
	newWeek, err := a.regenerateWeek(ctx, rot, userID, profile, appetizers, mains, desserts, accompaniments, w)
	if err != nil {
		return State{}, asTimeout(ctx, err)
	}

	payload := SingleWeekRegenerated{WeekID: w.ID, Week: newWeek, Rotation: st.Rotation.ToDTO()}
	kind, blob, err := encode(KindSingleWeekRegenerated, payload)
	if err != nil {
		return State{}, err
	}
	rec, err := a.appendEvent(ctx, userID, st.Version, kind, blob, requestID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.EventAppendFailed, "append regeneration event", err)
	}
	st.apply(payload)
	st.Version = rec.Version

	if err := a.emitShoppingList(ctx, &st, newWeek, requestID); err != nil {
		return State{}, err
	}
	return st, nil
}

// RegenerateAllFutureWeeks rebuilds every unlocked week's assignments,
// leaving the locked (current) week byte-identical.
func (a *Aggregate) RegenerateAllFutureWeeks(ctx context.Context, userID, requestID string) (State, error) {
	if err := validateBaseCommand(userID, requestID); err != nil {
		return State{}, err
	}
	ctx, cancel := withCommandDeadline(ctx)
	defer cancel()

	st, err := a.Load(ctx, userID)
	if err != nil {
		return State{}, err
	}

	today := a.deps.Clock.Now()
	profile, appetizers, mains, desserts, accompaniments, err := a.loadFilteredFavorites(ctx, userID)
	if err != nil {
		return State{}, err
	}

	rot := st.Rotation
	finalWeeks := make([]week.Week, len(st.Weeks))
	for i, w := range st.Weeks {
		if w.IsLocked(today) {
			finalWeeks[i] = w
			continue
		}
		newWeek, err := a.regenerateWeek(ctx, rot, userID, profile, appetizers, mains, desserts, accompaniments, w)
		if err != nil {
			return State{}, asTimeout(ctx, err)
		}
		finalWeeks[i] = newWeek
	}

	payload := AllFutureWeeksRegenerated{Weeks: finalWeeks, Rotation: st.Rotation.ToDTO()}
	kind, blob, err := encode(KindAllFutureWeeksRegenerated, payload)
	if err != nil {
		return State{}, err
	}
	rec, err := a.appendEvent(ctx, userID, st.Version, kind, blob, requestID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.EventAppendFailed, "append regeneration event", err)
	}
	st.apply(payload)
	st.Version = rec.Version

	for _, w := range st.Weeks {
		if w.IsLocked(today) {
			continue
		}
		if err := a.emitShoppingList(ctx, &st, w, requestID); err != nil {
			return State{}, err
		}
	}
	return st, nil
}

// ReplaceMeal swaps a single assignment's recipe. newSnapshotID
// must already be durable in the Snapshot Store before the event
// referencing it is committed — callers snapshot the replacement recipe
// before issuing this command.
// Fails with WeekLocked if the owning week is locked.
func (a *Aggregate) ReplaceMeal(ctx context.Context, userID string, weekID uuid.UUID, date time.Time, course recipe.Course, newSnapshotID, requestID string) (State, error) {
	if err := validateReplaceMeal(userID, weekID, course, newSnapshotID, requestID); err != nil {
		return State{}, err
	}
	ctx, cancel := withCommandDeadline(ctx)
	defer cancel()

	st, err := a.Load(ctx, userID)
	if err != nil {
		return State{}, err
	}

	w, ok := st.Week(weekID)
	if !ok {
		return State{}, ErrWeekNotFound
	}
	today := a.deps.Clock.Now()
	if w.IsLocked(today) {
		return State{}, apperrors.WeekLockedErr(w.ID.String())
	}

	asn, ok := w.AssignmentFor(date, course)
	if !ok {
		return State{}, fmt.Errorf("plan: no %s assignment on %s", course, date.Format("2006-01-02"))
	}

	oldSnap, err := a.deps.Snapshots.Get(ctx, asn.SnapshotID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.SnapshotMissing, "replace meal: load old snapshot", err)
	}
	newSnap, err := a.deps.Snapshots.Get(ctx, newSnapshotID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.SnapshotMissing, "replace meal: load new snapshot", err)
	}

	// Rotation bookkeeping: the old recipe returns to the pool, the new one
	// is marked used. A replacement
	// main that happens to already be in use elsewhere in the batch is
	// accepted rather than rejected: the contract assumes the caller (the
	// UI/API layer) only offers unused favorites as replacement candidates.
	st.Rotation.Unmark(course.AsKind(), oldSnap.OriginalRecipeID)
	st.Rotation.MarkUsed(course.AsKind(), newSnap.OriginalRecipeID)

	newWeek := w
	newWeek.Assignments = append([]week.MealAssignment(nil), w.Assignments...)
	for i, a2 := range newWeek.Assignments {
		if a2.ID == asn.ID {
			newWeek.Assignments[i].SnapshotID = newSnapshotID
			newWeek.Assignments[i].PrepRequired = newSnap.HasAdvancePrep()
			break
		}
	}

	payload := MealReplaced{
		WeekID:        w.ID,
		Date:          date,
		Course:        course,
		OldSnapshotID: asn.SnapshotID,
		NewSnapshotID: newSnapshotID,
		Week:          newWeek,
		Rotation:      st.Rotation.ToDTO(),
	}
	kind, blob, err := encode(KindMealReplaced, payload)
	if err != nil {
		return State{}, err
	}
	rec, err := a.appendEvent(ctx, userID, st.Version, kind, blob, requestID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.EventAppendFailed, "append replacement event", err)
	}
	st.apply(payload)
	st.Version = rec.Version

	if err := a.emitShoppingList(ctx, &st, newWeek, requestID); err != nil {
		return State{}, err
	}
	return st, nil
}
