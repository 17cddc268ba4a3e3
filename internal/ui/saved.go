package ui

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
)

const (
	opFavorite = "favorite"
	opDelete   = "delete"
)

// deletedMsg reports a finished delete of the entity with id.
type deletedMsg = writeMsg[int64]

// savedScreen lists the saved meals from the shared snapshot. ?favorites=1
// narrows it to favorites.
type savedScreen struct {
	env           screenEnv
	loc           location
	favoritesOnly bool
	snapshot      state.Snapshot
	list          cursorList
	load          loadState
	confirmDelete int64
	rows          int
}

func newSavedScreen(env screenEnv, loc location) screen {
	return &savedScreen{
		env:           env,
		loc:           loc,
		favoritesOnly: loc.Query.Get("favorites") == "1",
		snapshot:      env.store.Snapshot(),
		load:          newLoadState(),
	}
}

func (s *savedScreen) Init() tea.Cmd {
	if !s.snapshot.HasData {
		return tea.Batch(s.load.start(), refreshStore(s.env))
	}
	return nil
}

func (s *savedScreen) Title() string {
	if s.favoritesOnly {
		return "Favorite meals"
	}
	return "Saved meals"
}

func (s *savedScreen) Capturing() bool { return false }

func (s *savedScreen) Hints() []hint {
	if s.confirmDelete != 0 {
		return []hint{{"d", "Confirm delete"}, {"esc", "Cancel"}}
	}
	return []hint{{"enter", "Open"}, {"f", "Favorite"}, {"F", ternary(s.favoritesOnly, "All", "Favorites")}, {"n", "New"}, {"d", "Delete"}, {"r", "Reload"}}
}

// meals returns the meals shown, favorites first and then by name.
func (s *savedScreen) meals() []mealapi.Meal {
	out := make([]mealapi.Meal, 0, len(s.snapshot.Meals))
	for _, m := range s.snapshot.Meals {
		if s.favoritesOnly && !m.Favorite {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Favorite != out[j].Favorite {
			return out[i].Favorite
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (s *savedScreen) selected() (mealapi.Meal, bool) {
	meals := s.meals()
	if s.list.cursor < len(meals) {
		return meals[s.list.cursor], true
	}
	return mealapi.Meal{}, false
}

func (s *savedScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.rows = msg.height
		return s, nil

	case snapshotMsg:
		s.snapshot = state.Snapshot(msg)
		s.list.clamp(len(s.meals()))
		return s, nil

	case resultMsg[state.Snapshot]:
		s.load.done(msg.err)
		if msg.err == nil {
			s.snapshot = msg.value
			s.list.clamp(len(s.meals()))
		}
		return s, nil

	case writeMsg[mealapi.Meal], deletedMsg:
		s.snapshot = s.env.store.Snapshot()
		s.list.clamp(len(s.meals()))
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.load.update(msg)
}

func (s *savedScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := s.env.keys
	pending := s.confirmDelete
	s.confirmDelete = 0

	switch {
	case key.Matches(msg, keys.Escape):
		return s, nil

	case key.Matches(msg, keys.Open):
		if m, ok := s.selected(); ok {
			return s, navigateTo(mealTarget(s.env, m))
		}

	case key.Matches(msg, keys.Filter):
		target := s.env.pathFor(RouteSavedMeals)
		if !s.favoritesOnly {
			target += "?favorites=1"
		}
		return s, replaceWith(target)

	case key.Matches(msg, keys.New):
		return s, navigateTo(s.env.pathFor(RouteAddMeal))

	case key.Matches(msg, keys.Refresh):
		return s, tea.Batch(s.load.start(), refreshStore(s.env))

	case key.Matches(msg, keys.Favorite):
		if m, ok := s.selected(); ok {
			return s, toggleFavorite(s.env, m.ID)
		}

	case key.Matches(msg, keys.Delete):
		m, ok := s.selected()
		if !ok {
			return s, nil
		}
		if pending != m.ID {
			s.confirmDelete = m.ID
			return s, flash(flashInfo, "Press d again to delete "+m.Name)
		}
		return s, deleteMeal(s.env, m.ID)

	default:
		s.list.handleKey(msg, keys, len(s.meals()), s.rows)
	}
	return s, nil
}

func (s *savedScreen) View(v viewContext) string {
	if out, ok := s.load.view(v, "saved meals"); !ok && !s.snapshot.HasData {
		return box(v, s.Title(), out)
	}

	meals := s.meals()
	rows := make([]string, len(meals))
	for i, m := range meals {
		rows[i] = mealRow(m)
	}
	empty := "No saved meals yet. Search for recipes with 1, or press n to add your own."
	if s.favoritesOnly {
		empty = "No favorites yet. Press f on a meal to mark it."
	}
	return box(v, s.Title(), renderList(v, &s.list, rows, v.width-2, bodyHeight(v), empty))
}

func mealRow(m mealapi.Meal) string {
	var b strings.Builder
	b.WriteString(ternary(m.Favorite, "★ ", "  "))
	b.WriteString(m.Name)
	if meta := strings.Join(nonEmpty(m.Category, m.Area), " · "); meta != "" {
		b.WriteString("  (" + meta + ")")
	}
	if m.Custom() {
		b.WriteString("  [custom]")
	}
	return b.String()
}

// mealTarget is the location that shows m.
func mealTarget(env screenEnv, m mealapi.Meal) string {
	name := RouteViewMeal
	if m.Custom() {
		name = RouteCustomMealView
	}
	return env.pathFor(name, routes.Param{Key: "id", Value: strconv.FormatInt(m.ID, 10)})
}

func toggleFavorite(env screenEnv, id int64) tea.Cmd {
	client := env.client
	return write(env, writeOp[mealapi.Meal]{
		op: opFavorite,
		run: func(ctx context.Context) (mealapi.Meal, error) {
			return client.ToggleFavorite(ctx, id)
		},
		apply: func(store *state.Store, m mealapi.Meal) { store.ReplaceMeal(m) },
		success: func(m mealapi.Meal) string {
			return ternary(m.Favorite, "Favorited ", "Unfavorited ") + m.Name
		},
		failure: "Update failed",
	})
}

func deleteMeal(env screenEnv, id int64) tea.Cmd {
	client := env.client
	return write(env, writeOp[int64]{
		op: opDelete,
		run: func(ctx context.Context) (int64, error) {
			return id, client.DeleteMeal(ctx, id)
		},
		apply:   func(store *state.Store, id int64) { store.RemoveMeal(id) },
		success: func(int64) string { return "Meal deleted" },
		failure: "Delete failed",
	})
}
