package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mealplan/internal/mealapi"
)

const (
	opSearch  = "search"
	opFilter  = "filter"
	opFilters = "filters"
	opSave    = "save"
)

// searchScreen looks up recipes in the external database by name (?q=) or
// by category or area (?category=, ?area=) and saves them.
type searchScreen struct {
	env   screenEnv
	loc   location
	input textinput.Model
	load  loadState

	query    string
	category string
	area     string

	recipes   []mealapi.Recipe
	summaries []mealapi.MealSummary
	list      cursorList

	picking    bool
	filters    []mealapi.Filter
	filterList cursorList
	filterLoad loadState

	detail      viewport.Model
	detailFocus bool
	showDetail  bool
	width       int
	height      int
}

func newSearchScreen(env screenEnv, loc location) screen {
	input := textinput.New()
	input.Prompt = "Recipe: "
	input.Placeholder = "e.g. Arrabiata"
	input.CharLimit = 80

	s := &searchScreen{
		env:        env,
		loc:        loc,
		input:      input,
		load:       newLoadState(),
		filterLoad: newLoadState(),
		query:      strings.TrimSpace(loc.Query.Get("q")),
		category:   strings.TrimSpace(loc.Query.Get("category")),
		area:       strings.TrimSpace(loc.Query.Get("area")),
		detail:     viewport.New(0, 0),
	}
	s.input.SetValue(s.query)
	return s
}

func (s *searchScreen) Init() tea.Cmd {
	switch {
	case s.query != "":
		return s.search()
	case s.category != "" || s.area != "":
		return s.filter()
	}
	return s.input.Focus()
}

func (s *searchScreen) Title() string {
	switch {
	case s.query != "":
		return fmt.Sprintf("Search %q", s.query)
	case s.category != "":
		return "Category " + s.category
	case s.area != "":
		return "Area " + s.area
	}
	return "Recipe search"
}

func (s *searchScreen) Capturing() bool { return s.input.Focused() }

func (s *searchScreen) Hints() []hint {
	if s.input.Focused() {
		return []hint{{"enter", "Search"}, {"esc", "Results"}}
	}
	if s.picking {
		return []hint{{"j/k", "Navigate"}, {"enter", "Browse"}, {"esc", "Close"}}
	}
	return []hint{{"/", "Search"}, {"F", "Browse"}, {"enter", "Details"}, {"a", "Save"}, {"tab", "Focus"}}
}

func (s *searchScreen) search() tea.Cmd {
	client, query := s.env.client, s.query
	return tea.Batch(s.load.start(), load(s.env, opSearch, func(ctx context.Context) ([]mealapi.Recipe, error) {
		return client.SearchMeals(ctx, query)
	}))
}

func (s *searchScreen) filter() tea.Cmd {
	client, category, area := s.env.client, s.category, s.area
	return tea.Batch(s.load.start(), load(s.env, opFilter, func(ctx context.Context) ([]mealapi.MealSummary, error) {
		return client.FilterMeals(ctx, category, area)
	}))
}

func (s *searchScreen) loadFilters() tea.Cmd {
	client := s.env.client
	return tea.Batch(s.filterLoad.start(), load(s.env, opFilters, func(ctx context.Context) ([]mealapi.Filter, error) {
		return client.Filters(ctx)
	}))
}

// searchTarget builds the location for a search by name.
func (s *searchScreen) searchTarget(q string) string {
	base := s.env.pathFor(RouteRecipeSearch)
	if q == "" {
		return base
	}
	return base + "?" + url.Values{"q": {q}}.Encode()
}

func (s *searchScreen) filterTarget(f mealapi.Filter) string {
	param := "category"
	if f.Type == mealapi.FilterArea {
		param = "area"
	}
	return s.env.pathFor(RouteRecipeSearch) + "?" + url.Values{param: {f.Value}}.Encode()
}

func (s *searchScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.width, s.height = msg.width, msg.height
		s.input.Width = max(msg.width-len(s.input.Prompt)-6, 10)
		s.syncDetail()
		return s, nil

	case resultMsg[[]mealapi.Recipe]:
		s.load.done(msg.err)
		s.recipes = msg.value
		s.list.clamp(len(s.recipes))
		s.syncDetail()
		return s, nil

	case resultMsg[[]mealapi.MealSummary]:
		s.load.done(msg.err)
		s.summaries = msg.value
		s.list.clamp(len(s.summaries))
		return s, nil

	case resultMsg[[]mealapi.Filter]:
		s.filterLoad.done(msg.err)
		s.filters = msg.value
		s.filterList.clamp(len(s.filters))
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, tea.Batch(s.load.update(msg), s.filterLoad.update(msg))
}

func (s *searchScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := s.env.keys

	if s.input.Focused() {
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.NextItem):
			s.input.Blur()
			return s, nil
		case key.Matches(msg, keys.Confirm):
			q := strings.TrimSpace(s.input.Value())
			if q == "" {
				return s, nil
			}
			s.input.Blur()
			return s, navigateTo(s.searchTarget(q))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.picking {
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Filter):
			s.picking = false
		case key.Matches(msg, keys.Open):
			if s.filterList.cursor < len(s.filters) {
				s.picking = false
				return s, navigateTo(s.filterTarget(s.filters[s.filterList.cursor]))
			}
		case key.Matches(msg, keys.Refresh):
			return s, s.loadFilters()
		default:
			s.filterList.handleKey(msg, keys, len(s.filters), s.height)
		}
		return s, nil
	}

	if s.detailFocus {
		switch {
		case key.Matches(msg, keys.NextItem), key.Matches(msg, keys.Escape):
			s.detailFocus = false
			s.showDetail = s.wide() && s.showDetail
			return s, nil
		}
		var cmd tea.Cmd
		s.detail, cmd = s.detail.Update(msg)
		return s, cmd
	}

	switch {
	case key.Matches(msg, keys.Search):
		return s, s.input.Focus()

	case key.Matches(msg, keys.Filter):
		s.picking = true
		if s.filters == nil && !s.filterLoad.loading {
			return s, s.loadFilters()
		}
		return s, nil

	case key.Matches(msg, keys.Refresh):
		switch {
		case s.query != "":
			return s, s.search()
		case s.category != "" || s.area != "":
			return s, s.filter()
		}
		return s, nil

	case key.Matches(msg, keys.NextItem):
		if len(s.recipes) > 0 {
			s.detailFocus = true
			s.showDetail = true
			s.syncDetail()
		}
		return s, nil

	case key.Matches(msg, keys.Open):
		if len(s.summaries) > 0 && s.list.cursor < len(s.summaries) {
			return s, navigateTo(s.searchTarget(s.summaries[s.list.cursor].Name))
		}
		if len(s.recipes) > 0 {
			s.showDetail = true
			s.detailFocus = !s.wide()
			s.syncDetail()
		}
		return s, nil

	case key.Matches(msg, keys.Save):
		return s, s.save()
	}

	n := max(len(s.recipes), len(s.summaries))
	if s.list.handleKey(msg, keys, n, s.height) {
		s.syncDetail()
	}
	return s, nil
}

// save stores the selected recipe. Filter hits carry no recipe details, so
// they are looked up by name first.
func (s *searchScreen) save() tea.Cmd {
	client := s.env.client
	if s.list.cursor < len(s.recipes) {
		recipe := s.recipes[s.list.cursor]
		return saveMeal(s.env, opSave, func(ctx context.Context) (mealapi.Meal, error) {
			return client.AddMeal(ctx, recipe)
		})
	}
	if s.list.cursor < len(s.summaries) {
		summary := s.summaries[s.list.cursor]
		return saveMeal(s.env, opSave, func(ctx context.Context) (mealapi.Meal, error) {
			hits, err := client.SearchMeals(ctx, summary.Name)
			if err != nil {
				return mealapi.Meal{}, err
			}
			for _, r := range hits {
				if r.ExternalID == summary.ExternalID || strings.EqualFold(r.Name, summary.Name) {
					return client.AddMeal(ctx, r)
				}
			}
			return mealapi.Meal{}, fmt.Errorf("recipe %q not found", summary.Name)
		})
	}
	return nil
}

func (s *searchScreen) wide() bool { return s.width >= LayoutSplitWidth }

func (s *searchScreen) detailWidth() int {
	if s.wide() {
		return s.width - s.listWidth()
	}
	return s.width
}

func (s *searchScreen) listWidth() int {
	if s.wide() && s.showDetail {
		return s.width * 2 / 5
	}
	return s.width
}

func (s *searchScreen) syncDetail() {
	s.detail.Width = max(s.detailWidth()-4, 10)
	s.detail.Height = max(s.height-2, 1)
	if s.list.cursor < len(s.recipes) {
		s.detail.SetContent(recipeDetail(s.recipes[s.list.cursor], s.detail.Width))
		s.detail.GotoTop()
	}
}

func (s *searchScreen) View(v viewContext) string {
	if s.showDetail && !s.wide() && len(s.recipes) > 0 {
		return renderTitledBox(v.theme, s.recipes[s.list.cursor].Name, s.detail.View(), v.width, v.height, true)
	}

	listW := v.width
	if s.showDetail && s.wide() && len(s.recipes) > 0 {
		listW = s.listWidth()
	}

	var b strings.Builder
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	rowsHeight := bodyHeight(v) - 2

	if s.picking {
		if out, ok := s.filterLoad.view(v, "filters"); !ok {
			b.WriteString(out)
		} else {
			rows := make([]string, len(s.filters))
			for i, f := range s.filters {
				rows[i] = fmt.Sprintf("%-9s %s", f.Type, f.Value)
			}
			b.WriteString(renderList(v, &s.filterList, rows, listW-2, rowsHeight, "No filters available."))
		}
		return renderTitledBox(v.theme, "Browse by category or area", b.String(), listW, v.height, true)
	}

	if out, ok := s.load.view(v, "recipes"); !ok {
		b.WriteString(out)
	} else {
		b.WriteString(renderList(v, &s.list, s.rows(), listW-2, rowsHeight, s.emptyText()))
	}
	left := renderTitledBox(v.theme, s.Title(), b.String(), listW, v.height, !s.detailFocus)

	if listW == v.width {
		return left
	}
	right := renderTitledBox(v.theme, "Recipe", s.detail.View(), v.width-listW, v.height, s.detailFocus)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (s *searchScreen) rows() []string {
	if len(s.summaries) > 0 {
		rows := make([]string, len(s.summaries))
		for i, m := range s.summaries {
			rows[i] = m.Name
		}
		return rows
	}
	rows := make([]string, len(s.recipes))
	for i, r := range s.recipes {
		meta := strings.Join(nonEmpty(r.Category, r.Area), " · ")
		if meta != "" {
			meta = "  (" + meta + ")"
		}
		rows[i] = r.Name + meta
	}
	return rows
}

func (s *searchScreen) emptyText() string {
	switch {
	case s.query != "":
		return fmt.Sprintf("No recipes match %q.", s.query)
	case s.category != "" || s.area != "":
		return "Nothing found for this filter."
	}
	return "Type a recipe name and press enter, or F to browse."
}

// recipeDetail renders a recipe for the detail pane.
func recipeDetail(r mealapi.Recipe, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 10))
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("\n")
	if meta := strings.Join(nonEmpty(r.Category, r.Area), " · "); meta != "" {
		b.WriteString(meta)
		b.WriteString("\n")
	}
	b.WriteString("\nIngredients\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  • ")
		b.WriteString(ing.String())
		b.WriteString("\n")
	}
	if strings.TrimSpace(r.Instructions) != "" {
		b.WriteString("\nInstructions\n")
		b.WriteString(wrap.Render(strings.TrimSpace(r.Instructions)))
		b.WriteString("\n")
	}
	return b.String()
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
