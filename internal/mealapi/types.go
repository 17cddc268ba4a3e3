package mealapi

// Meal is a recipe saved in the backend.
type Meal struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Area         string `json:"area,omitempty"`
	Ingredients  string `json:"ingredients,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	SavedCount   int    `json:"savedCount"`
	CookedCount  int    `json:"cookedCount"`
	Favorite     bool   `json:"favorite"`
	Deleted      bool   `json:"deleted"`
}

// Custom reports whether the meal was entered by hand rather than imported
// from the recipe database.
func (m Meal) Custom() bool {
	return m.Thumbnail == ""
}

// Ingredient is one line of a recipe.
type Ingredient struct {
	Name    string
	Measure string
}

// Recipe is a search hit from the external recipe database.
type Recipe struct {
	ExternalID   string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumbnail    string
	Ingredients  []Ingredient
}

// Filter is one selectable category or area.
type Filter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Filter types returned by Filters.
const (
	FilterCategory = "Category"
	FilterArea     = "Area"
)

// MealSummary is a filter hit; only the name, id and thumbnail are known.
type MealSummary struct {
	ExternalID string
	Name       string
	Thumbnail  string
}

// WeeklyPlan assigns saved meals to days of one week.
type WeeklyPlan struct {
	ID           int64            `json:"id,omitempty"`
	Week         int              `json:"week"`
	Meals        map[string]int64 `json:"meals"`
	PortionSizes map[string]int   `json:"portionSizes,omitempty"`
}

// Clone returns a deep copy.
func (p WeeklyPlan) Clone() WeeklyPlan {
	out := p
	if p.Meals != nil {
		out.Meals = make(map[string]int64, len(p.Meals))
		for k, v := range p.Meals {
			out.Meals[k] = v
		}
	}
	if p.PortionSizes != nil {
		out.PortionSizes = make(map[string]int, len(p.PortionSizes))
		for k, v := range p.PortionSizes {
			out.PortionSizes[k] = v
		}
	}
	return out
}

// Weekdays lists plan days in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ShoppingList is the aggregated ingredient list of a plan.
type ShoppingList struct {
	PlanID     int64
	Multiplier int
	Items      []ShoppingItem
	// SkippedMeals names meals whose ingredients could not be parsed.
	SkippedMeals []string
}

// ShoppingItem is one aggregated ingredient.
type ShoppingItem struct {
	Ingredient string
	Amount     string
}
