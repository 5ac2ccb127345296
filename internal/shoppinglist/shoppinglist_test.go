// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package shoppinglist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rghsoftware/weeklymeals/internal/recipe"
	"github.com/rghsoftware/weeklymeals/internal/snapshot"
	"github.com/rghsoftware/weeklymeals/internal/week"
)

func putSnapshot(t *testing.T, store snapshot.Store, id string, ingredients []recipe.Ingredient) {
	t.Helper()
	_, err := store.Put(context.Background(), snapshot.Snapshot{
		ID:          id,
		Ingredients: ingredients,
		SnapshotAt:  time.Now(),
	})
	require.NoError(t, err)
}

func TestDerive_AggregatesAndCategorizes(t *testing.T) {
	store := snapshot.NewMemoryStore()
	putSnapshot(t, store, "snap-main", []recipe.Ingredient{
		{Name: "Chicken Breast", Quantity: 2, Unit: "lb"},
		{Name: "Onion", Quantity: 1, Unit: "unit"},
	})
	putSnapshot(t, store, "snap-acc", []recipe.Ingredient{
		{Name: "Rice", Quantity: 1, Unit: "cup"},
		{Name: "Onion", Quantity: 1, Unit: "unit"},
	})

	accSnapID := "snap-acc"
	w := week.Week{
		ID: uuid.New(),
		Assignments: []week.MealAssignment{
			{
				Course:                  recipe.CourseMainCourse,
				SnapshotID:              "snap-main",
				AccompanimentSnapshotID: &accSnapID,
			},
		},
	}

	list, err := Derive(context.Background(), w, store, time.Now())
	require.NoError(t, err)
	require.Len(t, list.Items, 3)

	byName := map[string]Item{}
	for _, item := range list.Items {
		byName[item.Name] = item
	}

	assert.Equal(t, 2.0, byName["Onion"].Quantity)
	assert.ElementsMatch(t, []string{"snap-main", "snap-acc"}, byName["Onion"].SourceSnapshotIDs)
	assert.Equal(t, CategoryMeat, byName["Chicken Breast"].Category)
	assert.Equal(t, CategoryGrains, byName["Rice"].Category)
	assert.Equal(t, CategoryProduce, byName["Onion"].Category)
}

func TestDerive_SortsStablyByCategoryThenName(t *testing.T) {
	store := snapshot.NewMemoryStore()
	putSnapshot(t, store, "snap", []recipe.Ingredient{
		{Name: "Spinach", Quantity: 1, Unit: "bunch"},
		{Name: "Bacon", Quantity: 1, Unit: "lb"},
		{Name: "Carrot", Quantity: 1, Unit: "unit"},
	})

	w := week.Week{
		ID: uuid.New(),
		Assignments: []week.MealAssignment{
			{Course: recipe.CourseMainCourse, SnapshotID: "snap"},
		},
	}

	list, err := Derive(context.Background(), w, store, time.Now())
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "Bacon", list.Items[0].Name)
	assert.Equal(t, CategoryProduce, list.Items[1].Category)
}

func TestFromSnapshotIDs_UnionsSources(t *testing.T) {
	list := ShoppingList{Items: []Item{
		{SourceSnapshotIDs: []string{"a", "b"}},
		{SourceSnapshotIDs: []string{"b", "c"}},
	}}
	union := list.FromSnapshotIDs()
	assert.Len(t, union, 3)
}

func TestCategoryOf_CompoundNamesAreDeterministic(t *testing.T) {
	assert.Equal(t, CategoryFrozen, CategoryOf("Vanilla Ice Cream"))
	assert.Equal(t, CategoryDairy, CategoryOf("Heavy Cream"))
	assert.Equal(t, CategoryPantry, CategoryOf("Chicken Broth"))
	assert.Equal(t, CategoryMeat, CategoryOf("Chicken Thighs"))
	assert.Equal(t, CategoryOther, CategoryOf("Dragonfruit"))
}
