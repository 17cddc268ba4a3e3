package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mealplan/internal/routes"
)

func TestNewRouteTable_ResolvesEveryLocation(t *testing.T) {
	table, err := NewRouteTable()
	require.NoError(t, err)
	require.Equal(t, 10, table.Len())
	assert.Empty(t, table.Shadows(), "no entry may hide a later one")

	r := routes.NewResolver(table)
	tests := []struct {
		target string
		name   string
		params map[string]string
	}{
		{"/", RouteRecipeSearch, map[string]string{}},
		{"/?q=soup", RouteRecipeSearch, map[string]string{}},
		{"/saved-meals", RouteSavedMeals, map[string]string{}},
		{"/create-weekly-plans", RouteCreateWeeklyPlan, map[string]string{}},
		{"/view-weekly-plans", RouteWeeklyPlans, map[string]string{}},
		{"/shopping-list/abc123", RouteShoppingList, map[string]string{"planId": "abc123"}},
		{"/edit-weekly-plan/7", RouteEditWeeklyPlan, map[string]string{"planId": "7"}},
		{"/statistics", RouteStatistics, map[string]string{}},
		{"/add-meal", RouteAddMeal, map[string]string{}},
		{"/meal/52772", RouteViewMeal, map[string]string{"id": "52772"}},
		{"/custom-meal/3", RouteCustomMealView, map[string]string{"id": "3"}},
	}
	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			res := r.Resolve(tc.target)
			require.True(t, res.Found())
			assert.Equal(t, tc.name, res.Name())
			assert.NotNil(t, res.Entry.View, "every entry binds a screen")
			assert.Equal(t, tc.params, res.Params.Map())
		})
	}
}

func TestNewRouteTable_NotFound(t *testing.T) {
	table, err := NewRouteTable()
	require.NoError(t, err)
	r := routes.NewResolver(table)

	for _, target := range []string{"/does-not-exist", "/shopping-list", "/meal", "/meal/1/extra"} {
		assert.False(t, r.Resolve(target).Found(), target)
	}
}

func TestNewRouteTable_PathsRoundTrip(t *testing.T) {
	table, err := NewRouteTable()
	require.NoError(t, err)
	r := routes.NewResolver(table)

	for _, e := range table.Entries() {
		p, err := routes.ParsePattern(e.Pattern)
		require.NoError(t, err)
		var params []routes.Param
		for _, name := range p.ParamNames() {
			params = append(params, routes.Param{Key: name, Value: "42"})
		}
		path, err := table.Path(e.Name, params...)
		require.NoError(t, err)
		assert.Equal(t, e.Name, r.Resolve(path).Name(), "path %q", path)
	}
}

// Earlier shapes of the route table. The root must keep resolving to the
// recipe search in each of them.
func historicalTables() map[string][]routes.Entry[ScreenFactory] {
	return map[string][]routes.Entry[ScreenFactory]{
		"first": {
			{Pattern: "/", Name: RouteRecipeSearch},
			{Pattern: "/saved-meals", Name: RouteSavedMeals},
		},
		"bare shopping list": {
			{Pattern: "/", Name: RouteRecipeSearch},
			{Pattern: "/saved-meals", Name: RouteSavedMeals},
			{Pattern: "/create-weekly-plans", Name: RouteCreateWeeklyPlan},
			{Pattern: "/view-weekly-plans", Name: RouteWeeklyPlans},
			{Pattern: "/shopping-list", Name: RouteShoppingList},
			{Pattern: "/edit-weekly-plan/:planId", Name: RouteEditWeeklyPlan},
			{Pattern: "/statistics", Name: RouteStatistics},
		},
		"current": routeEntries(),
	}
}

func TestHistoricalTables_RootIsRecipeSearch(t *testing.T) {
	for name, entries := range historicalTables() {
		t.Run(name, func(t *testing.T) {
			table, err := routes.NewTable(entries...)
			require.NoError(t, err)
			r := routes.NewResolver(table)
			for _, target := range []string{"/", "", "//", "/?q=pie", "/#top"} {
				assert.Equal(t, RouteRecipeSearch, r.Resolve(target).Name(), "target %q", target)
			}
		})
	}
}

func TestJumpTargets_ParameterlessInOrder(t *testing.T) {
	table, err := NewRouteTable()
	require.NoError(t, err)

	var names []string
	for _, e := range jumpTargets(table) {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		RouteRecipeSearch,
		RouteSavedMeals,
		RouteCreateWeeklyPlan,
		RouteWeeklyPlans,
		RouteStatistics,
		RouteAddMeal,
	}, names)
	assert.Nil(t, jumpTargets(nil))
}
