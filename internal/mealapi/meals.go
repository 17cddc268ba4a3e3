package mealapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// SearchMeals queries the recipe database by name.
func (c *Client) SearchMeals(ctx context.Context, name string) ([]Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	rel := "/api/meals/search?" + url.Values{"name": {name}}.Encode()
	raw, err := c.requestRaw(ctx, http.MethodGet, rel, nil)
	if err != nil {
		return nil, err
	}
	return parseRecipes(raw)
}

// FilterMeals lists recipes in a category or area. Exactly one must be set.
func (c *Client) FilterMeals(ctx context.Context, category, area string) ([]MealSummary, error) {
	category = strings.TrimSpace(category)
	area = strings.TrimSpace(area)
	values := url.Values{}
	switch {
	case category != "" && area != "":
		return nil, fmt.Errorf("filter meals: category and area are exclusive")
	case category != "":
		values.Set("category", category)
	case area != "":
		values.Set("area", area)
	default:
		return nil, fmt.Errorf("filter meals: category or area required")
	}
	raw, err := c.requestRaw(ctx, http.MethodGet, "/api/meals/filter?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return parseSummaries(raw)
}

// Filters returns the available categories and areas.
func (c *Client) Filters(ctx context.Context) ([]Filter, error) {
	var payload struct {
		Filters []Filter `json:"filters"`
	}
	if err := c.Request(ctx, http.MethodGet, "/api/meals/categoriesAndAreas", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Filters, nil
}

// SavedMeals returns every saved meal that is not deleted.
func (c *Client) SavedMeals(ctx context.Context) ([]Meal, error) {
	var meals []Meal
	if err := c.Request(ctx, http.MethodGet, "/api/meals", nil, &meals); err != nil {
		return nil, err
	}
	out := meals[:0]
	for _, m := range meals {
		if !m.Deleted {
			out = append(out, m)
		}
	}
	return out, nil
}

// AddMeal saves a recipe database hit.
func (c *Client) AddMeal(ctx context.Context, recipe Recipe) (Meal, error) {
	var saved Meal
	err := c.Request(ctx, http.MethodPost, "/api/meals/add", recipe.Meal(), &saved)
	return saved, err
}

// AddCustomMeal saves a hand-entered meal.
func (c *Client) AddCustomMeal(ctx context.Context, meal Meal) (Meal, error) {
	if strings.TrimSpace(meal.Name) == "" {
		return Meal{}, fmt.Errorf("add custom meal: name required")
	}
	var saved Meal
	err := c.Request(ctx, http.MethodPost, "/api/meals/add-custom", meal, &saved)
	return saved, err
}

// DeleteMeal removes a saved meal.
func (c *Client) DeleteMeal(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, mealPath(id), nil, nil)
}

// ToggleFavorite flips the favorite flag and returns the updated meal.
func (c *Client) ToggleFavorite(ctx context.Context, id int64) (Meal, error) {
	var meal Meal
	err := c.Request(ctx, http.MethodPut, mealPath(id), nil, &meal)
	return meal, err
}

func mealPath(id int64) string {
	return "/api/meals/" + strconv.FormatInt(id, 10)
}

// Meal converts a search hit into the shape the backend stores.
func (r Recipe) Meal() Meal {
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, ing.String())
	}
	return Meal{
		Name:         r.Name,
		Category:     r.Category,
		Area:         r.Area,
		Ingredients:  strings.Join(lines, ", "),
		Instructions: r.Instructions,
		Thumbnail:    r.Thumbnail,
	}
}

func (i Ingredient) String() string {
	if i.Measure == "" {
		return i.Name
	}
	return i.Measure + " " + i.Name
}

// parseRecipes reads the recipe database payload. Ingredients are stored as
// numbered strIngredientN/strMeasureN pairs with blanks for unused slots.
func parseRecipes(raw []byte) ([]Recipe, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode response: invalid json")
	}
	meals := gjson.GetBytes(raw, "meals")
	if !meals.IsArray() {
		return nil, nil
	}
	var out []Recipe
	meals.ForEach(func(_, m gjson.Result) bool {
		r := Recipe{
			ExternalID:   m.Get("idMeal").String(),
			Name:         strings.TrimSpace(m.Get("strMeal").String()),
			Category:     m.Get("strCategory").String(),
			Area:         m.Get("strArea").String(),
			Instructions: strings.TrimSpace(m.Get("strInstructions").String()),
			Thumbnail:    m.Get("strMealThumb").String(),
		}
		for n := 1; ; n++ {
			name := m.Get("strIngredient" + strconv.Itoa(n))
			if !name.Exists() {
				break
			}
			trimmed := strings.TrimSpace(name.String())
			if trimmed == "" {
				continue
			}
			r.Ingredients = append(r.Ingredients, Ingredient{
				Name:    trimmed,
				Measure: strings.TrimSpace(m.Get("strMeasure" + strconv.Itoa(n)).String()),
			})
		}
		if r.Name != "" {
			out = append(out, r)
		}
		return true
	})
	return out, nil
}

func parseSummaries(raw []byte) ([]MealSummary, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode response: invalid json")
	}
	var out []MealSummary
	gjson.GetBytes(raw, "meals").ForEach(func(_, m gjson.Result) bool {
		out = append(out, MealSummary{
			ExternalID: m.Get("idMeal").String(),
			Name:       m.Get("strMeal").String(),
			Thumbnail:  m.Get("strMealThumb").String(),
		})
		return true
	})
	return out, nil
}
