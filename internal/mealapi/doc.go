// Package mealapi is the HTTP client for the meal-planning backend.
//
// # Overview
//
// A single Client is created at startup with a fixed base endpoint and shared
// by every screen. Request is the generic call: it JSON-encodes a body,
// decodes a JSON response and turns any status >= 400 into an *APIError.
// Typed methods cover each backend endpoint:
//
//	GET    /api/meals/search?name=         SearchMeals
//	GET    /api/meals/filter?category=|area= FilterMeals
//	GET    /api/meals/categoriesAndAreas   Filters
//	GET    /api/meals                      SavedMeals
//	POST   /api/meals/add                  AddMeal
//	POST   /api/meals/add-custom           AddCustomMeal
//	DELETE /api/meals/{id}                 DeleteMeal
//	PUT    /api/meals/{id}                 ToggleFavorite
//	GET    /api/create-weekly-plans        WeeklyPlans
//	GET    /api/create-weekly-plans/{id}   WeeklyPlan
//	POST   /api/create-weekly-plans        CreateWeeklyPlan
//	PUT    /api/create-weekly-plans/{id}   UpdateWeeklyPlan
//	DELETE /api/create-weekly-plans/{id}   DeleteWeeklyPlan
//	GET    /api/shopping-list/{id}?multiplier= ShoppingList
//	GET    /api/statistics/...             TopSavedMeals, TotalSavedCount, CategoryDistribution
//
// # Headers
//
// Every request carries Accept: application/json, User-Agent: mealplan/<Version>
// and a fresh X-Request-Id. The id is also attached to log entries and to
// APIError so a failure in the UI can be matched to the backend log.
//
// # Retries and Circuit Breaking
//
// GET requests are retried with exponential backoff on transport errors and
// 5xx responses. Other methods are attempted once. Cancelling the context
// stops retrying immediately.
//
// Every attempt passes through a circuit breaker. After repeated consecutive
// failures the breaker opens and requests fail fast with
// ErrBackendUnavailable until the breaker timeout elapses. 4xx responses do
// not count as failures.
//
// # Recipe Search Payloads
//
// Search and filter results are passed through from the recipe database
// unchanged. They are read with gjson, so the numbered
// strIngredientN/strMeasureN fields become an Ingredient slice without
// declaring twenty struct fields.
package mealapi
