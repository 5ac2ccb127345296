// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package recipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		r       Recipe
		wantErr bool
	}{
		{
			name: "main with preferred accompaniments",
			r: Recipe{
				ID: "m1", Kind: KindMainCourse,
				AcceptsAccompaniment:    true,
				PreferredAccompaniments: []AccompanimentCategory{AccompanimentRice},
			},
		},
		{
			name: "accompaniment with category",
			r:    Recipe{ID: "a1", Kind: KindAccompaniment, AccompanimentCategory: AccompanimentSalad},
		},
		{
			name: "plain dessert",
			r:    Recipe{ID: "d1", Kind: KindDessert},
		},
		{
			name: "preferred accompaniments on a dessert",
			r: Recipe{
				ID: "d2", Kind: KindDessert,
				PreferredAccompaniments: []AccompanimentCategory{AccompanimentBread},
			},
			wantErr: true,
		},
		{
			name: "preferred accompaniments without accepts flag",
			r: Recipe{
				ID: "m2", Kind: KindMainCourse,
				PreferredAccompaniments: []AccompanimentCategory{AccompanimentPasta},
			},
			wantErr: true,
		},
		{
			name:    "accompaniment category on a main",
			r:       Recipe{ID: "m3", Kind: KindMainCourse, AccompanimentCategory: AccompanimentFries},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	p := UserProfile{UserID: "u1"}.WithDefaults()

	assert.Equal(t, 30, p.MaxPrepWeeknight)
	assert.Equal(t, 90, p.MaxPrepWeekend)
	assert.True(t, p.AvoidsConsecutiveComplex())
	assert.InDelta(t, 0.7, p.Variety(), 0.0001)
}

func TestMaxPrepFor(t *testing.T) {
	p := UserProfile{UserID: "u1", MaxPrepWeeknight: 25, MaxPrepWeekend: 80}

	assert.Equal(t, 25, p.MaxPrepFor(time.Wednesday))
	assert.Equal(t, 80, p.MaxPrepFor(time.Saturday))
	assert.Equal(t, 80, p.MaxPrepFor(time.Sunday))
}
