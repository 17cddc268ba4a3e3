package mealapi

import "context"

// API is the set of backend operations the client uses. *Client implements
// it; tests substitute fakes.
type API interface {
	SearchMeals(ctx context.Context, name string) ([]Recipe, error)
	FilterMeals(ctx context.Context, category, area string) ([]MealSummary, error)
	Filters(ctx context.Context) ([]Filter, error)
	SavedMeals(ctx context.Context) ([]Meal, error)
	AddMeal(ctx context.Context, recipe Recipe) (Meal, error)
	AddCustomMeal(ctx context.Context, meal Meal) (Meal, error)
	DeleteMeal(ctx context.Context, id int64) error
	ToggleFavorite(ctx context.Context, id int64) (Meal, error)

	WeeklyPlans(ctx context.Context) ([]WeeklyPlan, error)
	WeeklyPlan(ctx context.Context, id int64) (WeeklyPlan, error)
	CreateWeeklyPlan(ctx context.Context, plan WeeklyPlan) (WeeklyPlan, error)
	UpdateWeeklyPlan(ctx context.Context, id int64, meals map[string]int64) (WeeklyPlan, error)
	DeleteWeeklyPlan(ctx context.Context, id int64) error
	ShoppingList(ctx context.Context, planID int64, multiplier int) (ShoppingList, error)

	TopSavedMeals(ctx context.Context) ([]Meal, error)
	TotalSavedCount(ctx context.Context) (int64, error)
	CategoryDistribution(ctx context.Context) ([]CategoryCount, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)
