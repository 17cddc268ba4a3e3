package mealapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

const plansPath = "/api/create-weekly-plans"

// WeeklyPlans lists every plan.
func (c *Client) WeeklyPlans(ctx context.Context) ([]WeeklyPlan, error) {
	var plans []WeeklyPlan
	if err := c.Request(ctx, http.MethodGet, plansPath, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// WeeklyPlan fetches one plan.
func (c *Client) WeeklyPlan(ctx context.Context, id int64) (WeeklyPlan, error) {
	var plan WeeklyPlan
	err := c.Request(ctx, http.MethodGet, planPath(id), nil, &plan)
	return plan, err
}

// CreateWeeklyPlan stores a new plan. The backend rejects a second plan for
// the same week with 400.
func (c *Client) CreateWeeklyPlan(ctx context.Context, plan WeeklyPlan) (WeeklyPlan, error) {
	if plan.Week < 1 || plan.Week > 53 {
		return WeeklyPlan{}, fmt.Errorf("create weekly plan: week %d out of range", plan.Week)
	}
	var saved WeeklyPlan
	err := c.Request(ctx, http.MethodPost, plansPath, plan, &saved)
	return saved, err
}

// UpdateWeeklyPlan replaces the day to meal assignments of a plan.
func (c *Client) UpdateWeeklyPlan(ctx context.Context, id int64, meals map[string]int64) (WeeklyPlan, error) {
	if meals == nil {
		meals = map[string]int64{}
	}
	var saved WeeklyPlan
	err := c.Request(ctx, http.MethodPut, planPath(id), meals, &saved)
	return saved, err
}

// DeleteWeeklyPlan removes a plan.
func (c *Client) DeleteWeeklyPlan(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, planPath(id), nil, nil)
}

// ShoppingList aggregates the ingredients of a plan scaled by multiplier.
// A multiplier below 1 is treated as 1.
func (c *Client) ShoppingList(ctx context.Context, planID int64, multiplier int) (ShoppingList, error) {
	if multiplier < 1 {
		multiplier = 1
	}
	rel := "/api/shopping-list/" + strconv.FormatInt(planID, 10) + "?" +
		url.Values{"multiplier": {strconv.Itoa(multiplier)}}.Encode()
	raw, err := c.requestRaw(ctx, http.MethodGet, rel, nil)
	if err != nil {
		return ShoppingList{}, err
	}
	list, err := parseShoppingList(raw)
	if err != nil {
		return ShoppingList{}, err
	}
	list.PlanID = planID
	list.Multiplier = multiplier
	return list, nil
}

func planPath(id int64) string {
	return plansPath + "/" + strconv.FormatInt(id, 10)
}

// parseShoppingList accepts both the flat ingredient map and the wrapped
// {"ingredients": {...}, "skippedMeals": [...]} shape.
func parseShoppingList(raw []byte) (ShoppingList, error) {
	if !gjson.ValidBytes(raw) {
		return ShoppingList{}, fmt.Errorf("decode response: invalid json")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return ShoppingList{}, fmt.Errorf("decode response: shopping list is not an object")
	}
	items := root
	var list ShoppingList
	if wrapped := root.Get("ingredients"); wrapped.IsObject() {
		items = wrapped
		root.Get("skippedMeals").ForEach(func(_, v gjson.Result) bool {
			list.SkippedMeals = append(list.SkippedMeals, v.String())
			return true
		})
	}
	items.ForEach(func(k, v gjson.Result) bool {
		list.Items = append(list.Items, ShoppingItem{Ingredient: k.String(), Amount: v.String()})
		return true
	})
	sort.Slice(list.Items, func(i, j int) bool { return list.Items[i].Ingredient < list.Items[j].Ingredient })
	return list, nil
}
