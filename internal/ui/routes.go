package ui

import "github.com/five82/mealplan/internal/routes"

// Route names. They are stable identifiers: screens build paths by name so
// a pattern can change without touching callers.
const (
	RouteRecipeSearch     = "RecipeSearch"
	RouteSavedMeals       = "SavedMeals"
	RouteCreateWeeklyPlan = "CreateWeeklyPlan"
	RouteWeeklyPlans      = "WeeklyPlans"
	RouteShoppingList     = "ShoppingList"
	RouteEditWeeklyPlan   = "EditWeeklyPlan"
	RouteStatistics       = "Statisticsview"
	RouteAddMeal          = "AddMeal"
	RouteViewMeal         = "ViewMeal"
	RouteCustomMealView   = "CustomMealView"
)

// routeEntries declares every addressable location in match order.
func routeEntries() []routes.Entry[ScreenFactory] {
	return []routes.Entry[ScreenFactory]{
		{Pattern: "/", Name: RouteRecipeSearch, View: newSearchScreen},
		{Pattern: "/saved-meals", Name: RouteSavedMeals, View: newSavedScreen},
		{Pattern: "/create-weekly-plans", Name: RouteCreateWeeklyPlan, View: newCreatePlanScreen},
		{Pattern: "/view-weekly-plans", Name: RouteWeeklyPlans, View: newPlansScreen},
		{Pattern: "/shopping-list/:planId", Name: RouteShoppingList, View: newShoppingScreen},
		{Pattern: "/edit-weekly-plan/:planId", Name: RouteEditWeeklyPlan, View: newEditPlanScreen},
		{Pattern: "/statistics", Name: RouteStatistics, View: newStatsScreen},
		{Pattern: "/add-meal", Name: RouteAddMeal, View: newAddMealScreen},
		{Pattern: "/meal/:id", Name: RouteViewMeal, View: newMealScreen},
		{Pattern: "/custom-meal/:id", Name: RouteCustomMealView, View: newMealScreen},
	}
}

// NewRouteTable builds the application's route table.
func NewRouteTable() (*routes.Table[ScreenFactory], error) {
	return routes.NewTable(routeEntries()...)
}

// jumpTargets returns the parameterless locations in declaration order; the
// number keys jump to them.
func jumpTargets(table *routes.Table[ScreenFactory]) []routes.Entry[ScreenFactory] {
	if table == nil {
		return nil
	}
	var out []routes.Entry[ScreenFactory]
	for _, e := range table.Entries() {
		if !hasParams(e.Pattern) {
			out = append(out, e)
		}
	}
	return out
}

func hasParams(pattern string) bool {
	p, err := routes.ParsePattern(pattern)
	return err == nil && len(p.ParamNames()) > 0
}

// navLabels are the short names shown in the nav bar.
var navLabels = map[string]string{
	RouteRecipeSearch:     "Search",
	RouteSavedMeals:       "Saved",
	RouteCreateWeeklyPlan: "New plan",
	RouteWeeklyPlans:      "Plans",
	RouteShoppingList:     "Shopping",
	RouteEditWeeklyPlan:   "Edit plan",
	RouteStatistics:       "Stats",
	RouteAddMeal:          "Add meal",
	RouteViewMeal:         "Meal",
	RouteCustomMealView:   "Custom meal",
}

func navLabel(name string) string {
	if l, ok := navLabels[name]; ok {
		return l
	}
	return name
}
