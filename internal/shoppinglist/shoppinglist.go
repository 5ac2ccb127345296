// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package shoppinglist implements the per-week Shopping List Deriver
//: it walks a Week's assignments, reads snapshots, aggregates
// ingredients by (name, unit), and categorizes each line via a
// deterministic lookup table.
package shoppinglist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rghsoftware/weeklymeals/internal/snapshot"
	"github.com/rghsoftware/weeklymeals/internal/week"
)

// Category is the closed set of grocery categories an item may be filed
// under.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryDairy   Category = "dairy"
	CategoryMeat    Category = "meat"
	CategoryGrains  Category = "grains"
	CategoryPantry  Category = "pantry"
	CategoryFrozen  Category = "frozen"
	CategoryBakery  Category = "bakery"
	CategoryOther   Category = "other"
)

// Item is one aggregated ingredient line.
type Item struct {
	Category          Category
	Name              string
	Quantity          float64
	Unit              string
	Collected         bool
	SourceSnapshotIDs []string
}

// ShoppingList is the per-week derived output.
type ShoppingList struct {
	ID          uuid.UUID
	WeekID      uuid.UUID
	Items       []Item
	GeneratedAt time.Time
}

// FromSnapshotIDs returns the union of every item's source snapshot ids.
// It equals the set of snapshot ids the week's assignments reference only
// when every one of those snapshots has at least one ingredient: a
// snapshot with no ingredients produces no item and does not appear here.
func (sl ShoppingList) FromSnapshotIDs() map[string]struct{} {
	out := map[string]struct{}{}
	for _, item := range sl.Items {
		for _, id := range item.SourceSnapshotIDs {
			out[id] = struct{}{}
		}
	}
	return out
}

type aggregateKey struct {
	name string
	unit string
}

// Derive builds one week's shopping list: concatenate every assignment's
// primary (and, if present, accompaniment) snapshot ingredients, sum
// quantities per (name, unit), categorize, and sort stably by
// (category, name).
func Derive(ctx context.Context, w week.Week, store snapshot.Store, now time.Time) (ShoppingList, error) {
	agg := map[aggregateKey]*Item{}
	order := []aggregateKey{}

	addIngredients := func(snapID string) error {
		snap, err := store.Get(ctx, snapID)
		if err != nil {
			return fmt.Errorf("derive shopping list: %w", err)
		}
		for _, ing := range snap.Ingredients {
			key := aggregateKey{name: strings.ToLower(strings.TrimSpace(ing.Name)), unit: ing.Unit}
			item, ok := agg[key]
			if !ok {
				item = &Item{
					Category: CategoryOf(ing.Name),
					Name:     ing.Name,
					Unit:     ing.Unit,
				}
				agg[key] = item
				order = append(order, key)
			}
			item.Quantity += ing.Quantity
			item.SourceSnapshotIDs = append(item.SourceSnapshotIDs, snapID)
		}
		return nil
	}

	for _, a := range w.Assignments {
		if err := addIngredients(a.SnapshotID); err != nil {
			return ShoppingList{}, err
		}
		if a.AccompanimentSnapshotID != nil {
			if err := addIngredients(*a.AccompanimentSnapshotID); err != nil {
				return ShoppingList{}, err
			}
		}
	}

	items := make([]Item, 0, len(order))
	for _, key := range order {
		items = append(items, *agg[key])
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})

	return ShoppingList{
		ID:          uuid.New(),
		WeekID:      w.ID,
		Items:       items,
		GeneratedAt: now,
	}, nil
}
