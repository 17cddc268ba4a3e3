package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/prefs"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
)

func TestModel_NavigatePushesHistory(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)

	m = settle(t, m, navigateMsg{Target: "/"})
	m = settle(t, m, navigateMsg{Target: "/saved-meals/"})
	m = settle(t, m, navigateMsg{Target: "/statistics"})

	assert.Equal(t, "/statistics", m.CurrentTarget())
	assert.Equal(t, RouteStatistics, m.loc.Name)
	assert.IsType(t, &statsScreen{}, m.screen)
	assert.Equal(t, []string{"/", "/saved-meals"}, m.hist.back, "targets are stored normalized")

	m = settle(t, m, backMsg{})
	assert.Equal(t, "/saved-meals", m.CurrentTarget())
	assert.IsType(t, &savedScreen{}, m.screen)

	m = settle(t, m, backMsg{})
	m = settle(t, m, backMsg{})
	assert.Equal(t, "/", m.CurrentTarget(), "back stops at the first location")

	m = settle(t, m, forwardMsg{})
	assert.Equal(t, "/saved-meals", m.CurrentTarget())
	assert.True(t, m.hist.canForward())
}

func TestModel_ReplaceOverwritesCurrent(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)

	m = settle(t, m, navigateMsg{Target: "/view-weekly-plans"})
	m = settle(t, m, navigateMsg{Target: "/shopping-list/4"})
	m = settle(t, m, navigateMsg{Target: "/shopping-list/4?multiplier=2", Replace: true})

	assert.Equal(t, "/shopping-list/4?multiplier=2", m.CurrentTarget())
	assert.Equal(t, []string{"/view-weekly-plans"}, m.hist.back)
}

func TestModel_UnknownPathShowsNotFound(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)

	m = settle(t, m, navigateMsg{Target: "/does-not-exist"})
	require.IsType(t, &notFoundScreen{}, m.screen)
	assert.False(t, m.loc.Found())
	assert.Equal(t, "/does-not-exist", m.CurrentTarget())
	assert.Contains(t, m.View(), "does-not-exist")

	// Opening a known location from the fallback navigates there.
	m = settle(t, m, keyRunes("j"), keyType(tea.KeyEnter))
	assert.Equal(t, "/saved-meals", m.CurrentTarget())
}

func TestModel_DropsResultsOfSupersededScreens(t *testing.T) {
	api := &fakeAPI{total: 3}
	m := newTestModel(t, api, nil)

	next, _ := m.Update(navigateMsg{Target: "/statistics"})
	m = next.(Model)
	stale := m.seq

	// Reloading the same location builds a new screen with a new sequence.
	m = settle(t, m, navigateMsg{Target: "/statistics"})
	require.NotEqual(t, stale, m.seq)
	stats := m.screen.(*statsScreen)
	assert.Equal(t, int64(3), stats.total)

	m = settle(t, m, resultMsg[int64]{seq: stale, op: opTotalSaved, value: 99})
	assert.Equal(t, int64(3), m.screen.(*statsScreen).total, "stale result must be dropped")

	m = settle(t, m, resultMsg[int64]{seq: m.seq, op: opTotalSaved, value: 5})
	assert.Equal(t, int64(5), m.screen.(*statsScreen).total)
}

func TestModel_WriteOutlivesItsScreen(t *testing.T) {
	store := seededStore()
	api := &fakeAPI{meals: store.Snapshot().Meals}
	m := newTestModel(t, api, store)
	m = settle(t, m, navigateMsg{Target: "/saved-meals"}, keyRunes("d"))

	// The second d starts the delete of the top meal (Beef stew); the user
	// jumps away before it completes.
	next, pending := m.Update(keyRunes("d"))
	m = next.(Model)
	require.NotNil(t, pending)
	m = settle(t, m, keyRunes("5"))
	require.IsType(t, &statsScreen{}, m.screen)

	m = settle(t, m, collect(pending)...)
	assert.Equal(t, 1, api.called("DeleteMeal"))
	assert.NoError(t, api.deleteCtxErr, "the write must not run on the replaced screen's context")
	_, ok := store.Snapshot().Meal(2)
	assert.False(t, ok, "the store reflects the delete")
	assert.Equal(t, flashMsg{text: "Meal deleted", level: flashSuccess}, m.flash)
	assert.IsType(t, &statsScreen{}, m.screen, "a finished write does not navigate")
}

func TestModel_JumpKeys(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m = settle(t, m, navigateMsg{Target: "/saved-meals"})

	m = settle(t, m, keyRunes("5"))
	assert.Equal(t, "/statistics", m.CurrentTarget())

	m = settle(t, m, keyRunes("4"))
	assert.Equal(t, "/view-weekly-plans", m.CurrentTarget())

	m = settle(t, m, keyRunes("["))
	assert.Equal(t, "/statistics", m.CurrentTarget())

	m = settle(t, m, keyRunes("]"))
	assert.Equal(t, "/view-weekly-plans", m.CurrentTarget())
}

func TestModel_AddressBar(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m = settle(t, m, navigateMsg{Target: "/saved-meals"})

	m = settle(t, m, keyRunes(":"))
	require.True(t, m.addressing)
	assert.Equal(t, "/saved-meals", m.address.Value())

	// Keys typed into the address bar never reach the screen or globals.
	m.address.SetValue("")
	m = settle(t, m, keyRunes("/meal/9"), keyType(tea.KeyEnter))
	assert.False(t, m.addressing)
	assert.Equal(t, "/meal/9", m.CurrentTarget())
	assert.Equal(t, RouteViewMeal, m.loc.Name)

	m = settle(t, m, keyRunes("g"), keyType(tea.KeyEsc))
	assert.False(t, m.addressing)
	assert.Equal(t, "/meal/9", m.CurrentTarget())
}

func TestModel_PersistsLastPathAndTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	table, err := NewRouteTable()
	require.NoError(t, err)

	m := New(Options{
		Client:    &fakeAPI{},
		Store:     &state.Store{},
		Resolver:  routes.NewResolver(table),
		PrefsPath: path,
	})
	m = settle(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, navigateMsg{Target: "/view-weekly-plans"})

	p, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/view-weekly-plans", p.LastPath)

	m = settle(t, m, keyRunes("T"))
	p, err = prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, NextTheme("Basil"), p.Theme)
	assert.Equal(t, "/view-weekly-plans", p.LastPath)

	// Unknown locations are not remembered.
	settle(t, m, navigateMsg{Target: "/nowhere"})
	p, err = prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/view-weekly-plans", p.LastPath)
}

func TestModel_ViewRendersChrome(t *testing.T) {
	store := &state.Store{}
	store.Update([]mealapi.Meal{{ID: 1, Name: "Pad Thai"}}, nil, nil)
	m := newTestModel(t, &fakeAPI{}, store)
	m = settle(t, m, navigateMsg{Target: "/saved-meals"}, snapshotMsg(store.Snapshot()))

	out := m.View()
	assert.Contains(t, out, "mealplan")
	assert.Contains(t, out, "Saved meals")
	assert.Contains(t, out, "Pad Thai")
	assert.Contains(t, out, "/saved-meals")
}

func TestModel_CapturingScreenGetsLetters(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m = settle(t, m, navigateMsg{Target: "/add-meal"})
	require.True(t, m.screen.Capturing())

	// "q" and "5" are typed into the name field instead of quitting or jumping.
	m = settle(t, m, keyRunes("q5"))
	assert.Equal(t, "/add-meal", m.CurrentTarget())
	assert.Equal(t, "q5", m.screen.(*addMealScreen).inputs[fieldName].Value())
}

func TestModel_QuitCancelsScreen(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m = settle(t, m, navigateMsg{Target: "/statistics"})
	env := m.screen.(*statsScreen).env

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, env.ctx.Err())
}
