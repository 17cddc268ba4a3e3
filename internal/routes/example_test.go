package routes_test

import (
	"fmt"

	"github.com/five82/mealplan/internal/routes"
)

func ExampleResolver_Resolve() {
	table := routes.MustTable(
		routes.Entry[string]{Pattern: "/", Name: "RecipeSearch", View: "search"},
		routes.Entry[string]{Pattern: "/shopping-list/:planId", Name: "ShoppingList", View: "shopping"},
	)
	r := routes.NewResolver(table)

	res := r.Resolve("/shopping-list/abc123/?multiplier=2")
	fmt.Println(res.Name(), res.Params.Get("planId"), res.Query().Get("multiplier"))

	res = r.Resolve("/does-not-exist")
	fmt.Println(res.Found(), res.Path)

	// Output:
	// ShoppingList abc123 2
	// false /does-not-exist
}
