package mealapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"testing"
)

const searchPayload = `{
  "meals": [
    {
      "idMeal": "52772",
      "strMeal": "Teriyaki Chicken Casserole",
      "strCategory": "Chicken",
      "strArea": "Japanese",
      "strInstructions": "Preheat oven.",
      "strMealThumb": "https://example.com/t.jpg",
      "strIngredient1": "soy sauce",
      "strMeasure1": "3/4 cup",
      "strIngredient2": "water",
      "strMeasure2": "1/2 cup",
      "strIngredient3": "",
      "strMeasure3": " ",
      "strIngredient4": null,
      "strMeasure4": null
    },
    {"idMeal": "1", "strMeal": ""}
  ]
}`

func TestSearchMeals_ParsesNumberedIngredients(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(searchPayload))
	})

	recipes, err := c.SearchMeals(testContext(t), "  teriyaki ")
	if err != nil {
		t.Fatalf("SearchMeals returned error: %v", err)
	}
	if gotQuery.Get("name") != "teriyaki" {
		t.Fatalf("name query = %q", gotQuery.Get("name"))
	}
	if len(recipes) != 1 {
		t.Fatalf("recipes = %d, want 1 (blank names skipped)", len(recipes))
	}
	r := recipes[0]
	if r.Name != "Teriyaki Chicken Casserole" || r.Category != "Chicken" || r.Area != "Japanese" {
		t.Fatalf("recipe = %+v", r)
	}
	want := []Ingredient{{Name: "soy sauce", Measure: "3/4 cup"}, {Name: "water", Measure: "1/2 cup"}}
	if !reflect.DeepEqual(r.Ingredients, want) {
		t.Fatalf("ingredients = %+v, want %+v", r.Ingredients, want)
	}

	meal := r.Meal()
	if meal.Ingredients != "3/4 cup soy sauce, 1/2 cup water" {
		t.Fatalf("meal ingredients = %q", meal.Ingredients)
	}
	if meal.Custom() {
		t.Fatalf("imported meal reported as custom")
	}
}

func TestSearchMeals_NoHits(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals": null}`))
	})
	recipes, err := c.SearchMeals(testContext(t), "zzz")
	if err != nil {
		t.Fatalf("SearchMeals returned error: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("recipes = %+v, want none", recipes)
	}

	if recipes, err := c.SearchMeals(testContext(t), "   "); err != nil || recipes != nil {
		t.Fatalf("blank search = %v, %v; want nil, nil", recipes, err)
	}
}

func TestFilterMeals_ValidatesAndEncodes(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"3","strMeal":"Sushi","strMealThumb":"x"}]}`))
	})
	ctx := testContext(t)

	if _, err := c.FilterMeals(ctx, "", ""); err == nil {
		t.Fatalf("FilterMeals with no filter returned nil error")
	}
	if _, err := c.FilterMeals(ctx, "Seafood", "Japanese"); err == nil {
		t.Fatalf("FilterMeals with both filters returned nil error")
	}

	hits, err := c.FilterMeals(ctx, "", "Japanese")
	if err != nil {
		t.Fatalf("FilterMeals returned error: %v", err)
	}
	if gotQuery.Get("area") != "Japanese" || gotQuery.Has("category") {
		t.Fatalf("query = %v", gotQuery)
	}
	if len(hits) != 1 || hits[0].Name != "Sushi" || hits[0].ExternalID != "3" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestSavedMeals_DropsDeleted(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Meal{{ID: 1, Name: "A"}, {ID: 2, Name: "B", Deleted: true}})
	})
	meals, err := c.SavedMeals(testContext(t))
	if err != nil {
		t.Fatalf("SavedMeals returned error: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != 1 {
		t.Fatalf("meals = %+v", meals)
	}
}

func TestMealMutations_UseExpectedRoutes(t *testing.T) {
	t.Parallel()

	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = io.Copy(io.Discard, r.Body)
			_ = json.NewEncoder(w).Encode(Meal{ID: 5, Name: "X", Favorite: true})
		}
	})
	ctx := testContext(t)

	if _, err := c.AddCustomMeal(ctx, Meal{Name: "  "}); err == nil {
		t.Fatalf("AddCustomMeal accepted blank name")
	}
	if _, err := c.AddCustomMeal(ctx, Meal{Name: "X"}); err != nil {
		t.Fatalf("AddCustomMeal returned error: %v", err)
	}
	if _, err := c.AddMeal(ctx, Recipe{Name: "X"}); err != nil {
		t.Fatalf("AddMeal returned error: %v", err)
	}
	meal, err := c.ToggleFavorite(ctx, 5)
	if err != nil || !meal.Favorite {
		t.Fatalf("ToggleFavorite = %+v, %v", meal, err)
	}
	if err := c.DeleteMeal(ctx, 5); err != nil {
		t.Fatalf("DeleteMeal returned error: %v", err)
	}

	want := []string{
		"POST /api/meals/add-custom",
		"POST /api/meals/add",
		"PUT /api/meals/5",
		"DELETE /api/meals/5",
	}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("routes = %v, want %v", seen, want)
	}
}

func TestFilters(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"filters":[{"type":"Category","value":"Beef"},{"type":"Area","value":"Thai"}]}`))
	})
	filters, err := c.Filters(testContext(t))
	if err != nil {
		t.Fatalf("Filters returned error: %v", err)
	}
	want := []Filter{{Type: FilterCategory, Value: "Beef"}, {Type: FilterArea, Value: "Thai"}}
	if !reflect.DeepEqual(filters, want) {
		t.Fatalf("filters = %+v, want %+v", filters, want)
	}
}
