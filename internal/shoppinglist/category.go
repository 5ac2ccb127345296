// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package shoppinglist

import "strings"

// categoryEntry is one needle in the name->category lookup table used by
// the shopping-list deriver. Needles are matched as substrings of the lowercased ingredient
// name so "chicken breast" and "chicken thighs" both resolve to Meat
// without an entry per SKU variant.
type categoryEntry struct {
	needle   string
	category Category
}

// categoryTable is scanned in declaration order and the first match wins,
// which keeps the lookup deterministic. Compound names that would otherwise
// collide with a later needle ("ice cream" vs "cream", "chicken broth" vs
// "chicken") are listed before the needles they shadow.
var categoryTable = []categoryEntry{
	{"ice cream", CategoryFrozen},
	{"frozen", CategoryFrozen},

	{"broth", CategoryPantry},
	{"stock", CategoryPantry},
	{"sauce", CategoryPantry},
	{"canned", CategoryPantry},

	{"chicken", CategoryMeat},
	{"beef", CategoryMeat},
	{"pork", CategoryMeat},
	{"turkey", CategoryMeat},
	{"bacon", CategoryMeat},
	{"sausage", CategoryMeat},
	{"shrimp", CategoryMeat},
	{"salmon", CategoryMeat},
	{"fish", CategoryMeat},

	{"milk", CategoryDairy},
	{"cheese", CategoryDairy},
	{"butter", CategoryDairy},
	{"cream", CategoryDairy},
	{"yogurt", CategoryDairy},
	{"egg", CategoryDairy},

	{"rice", CategoryGrains},
	{"pasta", CategoryGrains},
	{"noodle", CategoryGrains},
	{"flour", CategoryGrains},
	{"oat", CategoryGrains},
	{"quinoa", CategoryGrains},

	{"bread", CategoryBakery},
	{"tortilla", CategoryBakery},
	{"bun", CategoryBakery},
	{"bagel", CategoryBakery},

	{"onion", CategoryProduce},
	{"garlic", CategoryProduce},
	{"tomato", CategoryProduce},
	{"pepper", CategoryProduce},
	{"lettuce", CategoryProduce},
	{"spinach", CategoryProduce},
	{"carrot", CategoryProduce},
	{"potato", CategoryProduce},
	{"broccoli", CategoryProduce},
	{"cucumber", CategoryProduce},
	{"lemon", CategoryProduce},
	{"lime", CategoryProduce},
	{"herb", CategoryProduce},
	{"cilantro", CategoryProduce},
	{"basil", CategoryProduce},
	{"parsley", CategoryProduce},

	{"salt", CategoryPantry},
	{"sugar", CategoryPantry},
	{"oil", CategoryPantry},
	{"vinegar", CategoryPantry},
	{"spice", CategoryPantry},
	{"cumin", CategoryPantry},
	{"paprika", CategoryPantry},
	{"bean", CategoryPantry},
}

// CategoryOf resolves a single grocery category for an ingredient name.
// Unknown ingredients fall back to Other.
func CategoryOf(ingredientName string) Category {
	lower := strings.ToLower(ingredientName)
	for _, e := range categoryTable {
		if strings.Contains(lower, e.needle) {
			return e.category
		}
	}
	return CategoryOther
}
