package mealapi

import (
	"context"
	"net/http"
	"sort"
)

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Category string
	Count    int64
}

// TopSavedMeals returns the most saved meals, most saved first.
func (c *Client) TopSavedMeals(ctx context.Context) ([]Meal, error) {
	var meals []Meal
	if err := c.Request(ctx, http.MethodGet, "/api/statistics/top-saved-recipes", nil, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// TotalSavedCount sums the save counters of every meal.
func (c *Client) TotalSavedCount(ctx context.Context) (int64, error) {
	var total int64
	err := c.Request(ctx, http.MethodGet, "/api/statistics/total-saved-count", nil, &total)
	return total, err
}

// CategoryDistribution counts saved meals per category, largest first.
func (c *Client) CategoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	var dist map[string]int64
	if err := c.Request(ctx, http.MethodGet, "/api/statistics/category-distribution", nil, &dist); err != nil {
		return nil, err
	}
	out := make([]CategoryCount, 0, len(dist))
	for name, n := range dist {
		out = append(out, CategoryCount{Category: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
