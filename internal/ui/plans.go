package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
)

// plansScreen lists the weekly plans.
type plansScreen struct {
	env           screenEnv
	loc           location
	snapshot      state.Snapshot
	list          cursorList
	load          loadState
	confirmDelete int64
	rows          int
}

func newPlansScreen(env screenEnv, loc location) screen {
	return &plansScreen{
		env:      env,
		loc:      loc,
		snapshot: env.store.Snapshot(),
		load:     newLoadState(),
	}
}

func (s *plansScreen) Init() tea.Cmd {
	if !s.snapshot.HasData {
		return tea.Batch(s.load.start(), refreshStore(s.env))
	}
	return nil
}

func (s *plansScreen) Title() string   { return "Weekly plans" }
func (s *plansScreen) Capturing() bool { return false }

func (s *plansScreen) Hints() []hint {
	if s.confirmDelete != 0 {
		return []hint{{"d", "Confirm delete"}, {"esc", "Cancel"}}
	}
	return []hint{{"enter", "Edit"}, {"s", "Shopping list"}, {"n", "New"}, {"d", "Delete"}, {"r", "Reload"}}
}

// plans returns the plans ordered by week.
func (s *plansScreen) plans() []mealapi.WeeklyPlan {
	out := append([]mealapi.WeeklyPlan(nil), s.snapshot.Plans...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

func (s *plansScreen) selected() (mealapi.WeeklyPlan, bool) {
	plans := s.plans()
	if s.list.cursor < len(plans) {
		return plans[s.list.cursor], true
	}
	return mealapi.WeeklyPlan{}, false
}

func (s *plansScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.rows = msg.height
		return s, nil

	case snapshotMsg:
		s.snapshot = state.Snapshot(msg)
		s.list.clamp(len(s.snapshot.Plans))
		return s, nil

	case resultMsg[state.Snapshot]:
		s.load.done(msg.err)
		if msg.err == nil {
			s.snapshot = msg.value
			s.list.clamp(len(s.snapshot.Plans))
		}
		return s, nil

	case deletedMsg:
		s.snapshot = s.env.store.Snapshot()
		s.list.clamp(len(s.snapshot.Plans))
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.load.update(msg)
}

func (s *plansScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := s.env.keys
	pending := s.confirmDelete
	s.confirmDelete = 0

	switch {
	case key.Matches(msg, keys.Escape):
		return s, nil
	case key.Matches(msg, keys.New):
		return s, navigateTo(s.env.pathFor(RouteCreateWeeklyPlan))
	case key.Matches(msg, keys.Refresh):
		return s, tea.Batch(s.load.start(), refreshStore(s.env))
	case key.Matches(msg, keys.Open), key.Matches(msg, keys.Edit):
		if p, ok := s.selected(); ok {
			return s, navigateTo(planTarget(s.env, RouteEditWeeklyPlan, p.ID))
		}
	case key.Matches(msg, keys.Shopping):
		if p, ok := s.selected(); ok {
			return s, navigateTo(planTarget(s.env, RouteShoppingList, p.ID))
		}
	case key.Matches(msg, keys.Delete):
		p, ok := s.selected()
		if !ok {
			return s, nil
		}
		if pending != p.ID {
			s.confirmDelete = p.ID
			return s, flash(flashInfo, fmt.Sprintf("Press d again to delete the plan for week %d", p.Week))
		}
		client := s.env.client
		return s, write(s.env, writeOp[int64]{
			op: opDelete,
			run: func(ctx context.Context) (int64, error) {
				return p.ID, client.DeleteWeeklyPlan(ctx, p.ID)
			},
			apply:   func(store *state.Store, id int64) { store.RemovePlan(id) },
			success: func(int64) string { return fmt.Sprintf("Deleted the plan for week %d", p.Week) },
			failure: "Delete failed",
		})
	default:
		s.list.handleKey(msg, keys, len(s.snapshot.Plans), s.rows)
	}
	return s, nil
}

func (s *plansScreen) View(v viewContext) string {
	if out, ok := s.load.view(v, "weekly plans"); !ok && !s.snapshot.HasData {
		return box(v, s.Title(), out)
	}

	plans := s.plans()
	rows := make([]string, len(plans))
	for i, p := range plans {
		rows[i] = fmt.Sprintf("Week %-3d %d/%d days planned", p.Week, plannedDays(p), len(mealapi.Weekdays))
	}

	listW := v.width
	wide := v.width >= LayoutSplitWidth && len(plans) > 0
	if wide {
		listW = v.width * 2 / 5
	}
	left := renderTitledBox(v.theme, s.Title(),
		renderList(v, &s.list, rows, listW-2, bodyHeight(v), "No weekly plans yet. Press n to create one."),
		listW, v.height, true)
	if !wide {
		return left
	}

	p, _ := s.selected()
	right := renderTitledBox(v.theme, fmt.Sprintf("Week %d", p.Week),
		planSummary(v, p, s.snapshot), v.width-listW, v.height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// planSummary lists each day and its meal.
func planSummary(v viewContext, p mealapi.WeeklyPlan, snap state.Snapshot) string {
	var b strings.Builder
	for _, day := range mealapi.Weekdays {
		b.WriteString(v.styles.MutedText.Render(padRight(day, 11)))
		id, ok := p.Meals[day]
		if !ok || id == 0 {
			b.WriteString(v.styles.FaintText.Render("-"))
		} else {
			b.WriteString(v.styles.Text.Render(snap.MealName(id)))
			if n := p.PortionSizes[day]; n > 1 {
				b.WriteString(v.styles.FaintText.Render(fmt.Sprintf(" ×%d", n)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func plannedDays(p mealapi.WeeklyPlan) int {
	n := 0
	for _, day := range mealapi.Weekdays {
		if p.Meals[day] != 0 {
			n++
		}
	}
	return n
}

// planTarget builds a location for a plan route.
func planTarget(env screenEnv, route string, id int64) string {
	return env.pathFor(route, routes.Param{Key: "planId", Value: strconv.FormatInt(id, 10)})
}
