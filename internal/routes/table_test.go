package routes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealTable(t *testing.T) *Table[string] {
	t.Helper()
	table, err := NewTable(
		Entry[string]{Pattern: "/", Name: "RecipeSearch", View: "search"},
		Entry[string]{Pattern: "/saved-meals", Name: "SavedMeals", View: "saved"},
		Entry[string]{Pattern: "/create-weekly-plans", Name: "CreateWeeklyPlan", View: "create"},
		Entry[string]{Pattern: "/view-weekly-plans", Name: "WeeklyPlans", View: "plans"},
		Entry[string]{Pattern: "/shopping-list/:planId", Name: "ShoppingList", View: "shopping"},
		Entry[string]{Pattern: "/edit-weekly-plan/:planId", Name: "EditWeeklyPlan", View: "edit"},
		Entry[string]{Pattern: "/statistics", Name: "Statisticsview", View: "stats"},
		Entry[string]{Pattern: "/add-meal", Name: "AddMeal", View: "add"},
		Entry[string]{Pattern: "/meal/:id", Name: "ViewMeal", View: "meal"},
		Entry[string]{Pattern: "/custom-meal/:id", Name: "CustomMealView", View: "custom"},
	)
	require.NoError(t, err)
	return table
}

func TestNewTable_PreservesOrder(t *testing.T) {
	table := mealTable(t)

	entries := table.Entries()
	require.Len(t, entries, 10)
	assert.Equal(t, 10, table.Len())
	assert.Equal(t, "RecipeSearch", entries[0].Name)
	assert.Equal(t, "CustomMealView", entries[9].Name)

	// Entries hands out a copy.
	entries[0].Name = "changed"
	assert.Equal(t, "RecipeSearch", table.Entries()[0].Name)
}

func TestNewTable_DuplicateName(t *testing.T) {
	table, err := NewTable(
		Entry[string]{Pattern: "/", Name: "RecipeSearch"},
		Entry[string]{Pattern: "/saved-meals", Name: "SavedMeals"},
		Entry[string]{Pattern: "/meals", Name: "SavedMeals"},
	)
	assert.Nil(t, table)

	var dup *DuplicateRouteNameError
	require.True(t, errors.As(err, &dup), "err = %v", err)
	assert.Equal(t, "SavedMeals", dup.Name)
	assert.Equal(t, 1, dup.First)
	assert.Equal(t, 2, dup.Second)
	assert.Contains(t, err.Error(), `duplicate route name "SavedMeals"`)
}

func TestNewTable_DuplicatePattern(t *testing.T) {
	table, err := NewTable(
		Entry[string]{Pattern: "/shopping-list/:planId", Name: "ShoppingList"},
		Entry[string]{Pattern: "/shopping-list/:planId", Name: "ShoppingListAgain"},
	)
	assert.Nil(t, table)

	var dup *DuplicatePathPatternError
	require.True(t, errors.As(err, &dup), "err = %v", err)
	assert.Equal(t, "/shopping-list/:planId", dup.Pattern)
	assert.Equal(t, 0, dup.First)
	assert.Equal(t, 1, dup.Second)
}

func TestNewTable_PatternsDifferingInPlaceholderNameAreDistinct(t *testing.T) {
	// Only byte-identical patterns are duplicates; the second entry is shadowed instead.
	table, err := NewTable(
		Entry[string]{Pattern: "/meal/:id", Name: "ViewMeal"},
		Entry[string]{Pattern: "/meal/:mealId", Name: "ViewMealByMealID"},
	)
	require.NoError(t, err)
	require.Len(t, table.Shadows(), 1)
}

func TestNewTable_InvalidEntries(t *testing.T) {
	_, err := NewTable(Entry[string]{Pattern: "/ok", Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = NewTable(Entry[string]{Pattern: "no-slash", Name: "Bad"})
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), `route "Bad"`)
}

func TestMustTable_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustTable(
			Entry[int]{Pattern: "/", Name: "A"},
			Entry[int]{Pattern: "/", Name: "B"},
		)
	})
}

func TestTable_Lookup(t *testing.T) {
	table := mealTable(t)

	e, ok := table.Lookup("ShoppingList")
	require.True(t, ok)
	assert.Equal(t, "/shopping-list/:planId", e.Pattern)
	assert.Equal(t, "shopping", e.View)

	_, ok = table.Lookup("Nope")
	assert.False(t, ok)
}

func TestTable_Path(t *testing.T) {
	table := mealTable(t)

	p, err := table.Path("ShoppingList", Param{Key: "planId", Value: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "/shopping-list/abc123", p)

	p, err = table.Path("RecipeSearch")
	require.NoError(t, err)
	assert.Equal(t, "/", p)

	_, err = table.Path("ViewMeal")
	assert.ErrorIs(t, err, ErrMissingParam)

	_, err = table.Path("Nope")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestTable_PathRoundTripsThroughResolve(t *testing.T) {
	table := mealTable(t)
	r := NewResolver(table)

	for _, value := range []string{"1", "abc123", "with space", "slash/inside", "ümlaut"} {
		p, err := table.Path("ViewMeal", Param{Key: "id", Value: value})
		require.NoError(t, err)

		res := r.Resolve(p)
		require.True(t, res.Found(), "path %q", p)
		assert.Equal(t, "ViewMeal", res.Name())
		assert.Equal(t, value, res.Params.Get("id"))
	}
}

func TestTable_Shadows(t *testing.T) {
	assert.Empty(t, mealTable(t).Shadows())

	table, err := NewTable(
		Entry[string]{Pattern: "/", Name: "RecipeSearch"},
		Entry[string]{Pattern: "/:id", Name: "ViewMeal"},
		Entry[string]{Pattern: "/statistics", Name: "Statisticsview"},
		Entry[string]{Pattern: "/add-meal", Name: "AddMeal"},
	)
	require.NoError(t, err)

	shadows := table.Shadows()
	require.Len(t, shadows, 2)
	assert.Equal(t, Shadow{
		Earlier:        "ViewMeal",
		EarlierPattern: "/:id",
		Later:          "Statisticsview",
		LaterPattern:   "/statistics",
	}, shadows[0])
	assert.Equal(t, "AddMeal", shadows[1].Later)
	assert.Equal(t, "ViewMeal (/:id) shadows AddMeal (/add-meal)", shadows[1].String())
}
