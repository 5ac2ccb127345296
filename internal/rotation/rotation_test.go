// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package rotation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
	"github.com/rghsoftware/weeklymeals/internal/recipe"
)

func TestNew_RejectsZeroCount(t *testing.T) {
	_, err := New(time.Now(), 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidRotationState))
}

func TestMarkUsed_AppetizerClearsIndependentlyFromMains(t *testing.T) {
	s, err := New(time.Now(), 10)
	require.NoError(t, err)
	s.SetFavoriteCount(recipe.KindAppetizer, 2)

	s.MarkUsed(recipe.KindAppetizer, "a1")
	assert.Equal(t, uint32(1), s.CycleNumber)
	s.MarkUsed(recipe.KindAppetizer, "a2")

	// Appetizer pool reached its count (2) and cleared; mains untouched.
	assert.Empty(t, s.UsedAppetizer)
	assert.Equal(t, uint32(2), s.CycleNumber)

	s.MarkUsed(recipe.KindMainCourse, "m1")
	assert.Contains(t, s.UsedMainCourse, "m1")
}

func TestCycleNumber_SaturatesAtMax(t *testing.T) {
	s, err := New(time.Now(), 1)
	require.NoError(t, err)
	s.CycleNumber = math.MaxUint32 - 1
	s.SetFavoriteCount(recipe.KindAppetizer, 1)

	s.MarkUsed(recipe.KindAppetizer, "a1") // triggers a reset: MaxUint32-1 -> MaxUint32
	assert.Equal(t, uint32(math.MaxUint32), s.CycleNumber)

	s.MarkUsed(recipe.KindAppetizer, "a2") // another reset must not wrap
	assert.Equal(t, uint32(math.MaxUint32), s.CycleNumber)
}

func TestUnmark_ReturnsRecipeToPool(t *testing.T) {
	s, err := New(time.Now(), 5)
	require.NoError(t, err)
	s.MarkUsed(recipe.KindMainCourse, "m1")
	require.True(t, s.IsUsed(recipe.KindMainCourse, "m1"))

	s.Unmark(recipe.KindMainCourse, "m1")
	assert.False(t, s.IsUsed(recipe.KindMainCourse, "m1"))
}

func TestWasComplexDayBefore(t *testing.T) {
	s, err := New(time.Now(), 5)
	require.NoError(t, err)

	day := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	s.RecordComplexMeal(day, recipe.ComplexityComplex)

	assert.True(t, s.WasComplexDayBefore(day.AddDate(0, 0, 1)))
	assert.False(t, s.WasComplexDayBefore(day.AddDate(0, 0, 2)))
}

func TestRecordComplexMeal_IgnoresNonComplex(t *testing.T) {
	s, err := New(time.Now(), 5)
	require.NoError(t, err)
	s.RecordComplexMeal(time.Now(), recipe.ComplexitySimple)
	assert.Nil(t, s.LastComplexMealAt)
}

func TestClone_IsIndependent(t *testing.T) {
	s, err := New(time.Now(), 5)
	require.NoError(t, err)
	s.MarkUsed(recipe.KindMainCourse, "m1")

	clone := s.Clone()
	clone.MarkUsed(recipe.KindMainCourse, "m2")

	assert.Len(t, s.UsedMainCourse, 1)
	assert.Len(t, clone.UsedMainCourse, 2)
}
