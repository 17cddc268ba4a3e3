package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mealplan/internal/logging"
	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
)

// fakeAPI is an in-memory backend. Calls are recorded by method name.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	recipes   []mealapi.Recipe
	summaries []mealapi.MealSummary
	filters   []mealapi.Filter
	meals     []mealapi.Meal
	plans     []mealapi.WeeklyPlan
	shopping  mealapi.ShoppingList
	top       []mealapi.Meal
	total     int64
	dist      []mealapi.CategoryCount
	nextID    int64
	err       error

	lastMultiplier int
	lastMeal       mealapi.Meal
	lastPlan       mealapi.WeeklyPlan
	lastPlanMeals  map[string]int64
	deleteCtxErr   error
}

var _ mealapi.API = (*fakeAPI)(nil)

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeAPI) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) SearchMeals(_ context.Context, name string) ([]mealapi.Recipe, error) {
	return f.recipes, f.record("SearchMeals")
}

func (f *fakeAPI) FilterMeals(_ context.Context, category, area string) ([]mealapi.MealSummary, error) {
	return f.summaries, f.record("FilterMeals")
}

func (f *fakeAPI) Filters(context.Context) ([]mealapi.Filter, error) {
	return f.filters, f.record("Filters")
}

func (f *fakeAPI) SavedMeals(context.Context) ([]mealapi.Meal, error) {
	return f.meals, f.record("SavedMeals")
}

func (f *fakeAPI) AddMeal(_ context.Context, recipe mealapi.Recipe) (mealapi.Meal, error) {
	if err := f.record("AddMeal"); err != nil {
		return mealapi.Meal{}, err
	}
	m := recipe.Meal()
	f.mu.Lock()
	f.nextID++
	m.ID = f.nextID
	f.lastMeal = m
	f.mu.Unlock()
	return m, nil
}

func (f *fakeAPI) AddCustomMeal(_ context.Context, meal mealapi.Meal) (mealapi.Meal, error) {
	if err := f.record("AddCustomMeal"); err != nil {
		return mealapi.Meal{}, err
	}
	f.mu.Lock()
	f.nextID++
	meal.ID = f.nextID
	f.lastMeal = meal
	f.mu.Unlock()
	return meal, nil
}

func (f *fakeAPI) DeleteMeal(ctx context.Context, _ int64) error {
	f.mu.Lock()
	f.deleteCtxErr = ctx.Err()
	f.mu.Unlock()
	return f.record("DeleteMeal")
}

func (f *fakeAPI) ToggleFavorite(_ context.Context, id int64) (mealapi.Meal, error) {
	if err := f.record("ToggleFavorite"); err != nil {
		return mealapi.Meal{}, err
	}
	for _, m := range f.meals {
		if m.ID == id {
			m.Favorite = !m.Favorite
			return m, nil
		}
	}
	return mealapi.Meal{}, &mealapi.APIError{StatusCode: 404}
}

func (f *fakeAPI) WeeklyPlans(context.Context) ([]mealapi.WeeklyPlan, error) {
	return f.plans, f.record("WeeklyPlans")
}

func (f *fakeAPI) WeeklyPlan(_ context.Context, id int64) (mealapi.WeeklyPlan, error) {
	if err := f.record("WeeklyPlan"); err != nil {
		return mealapi.WeeklyPlan{}, err
	}
	for _, p := range f.plans {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return mealapi.WeeklyPlan{}, &mealapi.APIError{StatusCode: 404}
}

func (f *fakeAPI) CreateWeeklyPlan(_ context.Context, plan mealapi.WeeklyPlan) (mealapi.WeeklyPlan, error) {
	if err := f.record("CreateWeeklyPlan"); err != nil {
		return mealapi.WeeklyPlan{}, err
	}
	f.mu.Lock()
	f.nextID++
	plan.ID = f.nextID
	f.lastPlan = plan.Clone()
	f.mu.Unlock()
	return plan, nil
}

func (f *fakeAPI) UpdateWeeklyPlan(_ context.Context, id int64, meals map[string]int64) (mealapi.WeeklyPlan, error) {
	if err := f.record("UpdateWeeklyPlan"); err != nil {
		return mealapi.WeeklyPlan{}, err
	}
	f.mu.Lock()
	f.lastPlanMeals = meals
	f.mu.Unlock()
	return mealapi.WeeklyPlan{ID: id, Week: 10, Meals: meals}, nil
}

func (f *fakeAPI) DeleteWeeklyPlan(context.Context, int64) error {
	return f.record("DeleteWeeklyPlan")
}

func (f *fakeAPI) ShoppingList(_ context.Context, planID int64, multiplier int) (mealapi.ShoppingList, error) {
	f.mu.Lock()
	f.lastMultiplier = multiplier
	f.mu.Unlock()
	list := f.shopping
	list.PlanID = planID
	list.Multiplier = multiplier
	return list, f.record("ShoppingList")
}

func (f *fakeAPI) TopSavedMeals(context.Context) ([]mealapi.Meal, error) {
	return f.top, f.record("TopSavedMeals")
}

func (f *fakeAPI) TotalSavedCount(context.Context) (int64, error) {
	return f.total, f.record("TotalSavedCount")
}

func (f *fakeAPI) CategoryDistribution(context.Context) ([]mealapi.CategoryCount, error) {
	return f.dist, f.record("CategoryDistribution")
}

// collect runs cmd and returns the messages it produces, flattening
// batches. Commands that block (ticks, cursor blinks) are abandoned.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// settle feeds msgs to m and then every message the resulting commands
// produce, until nothing is left.
func settle(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	queue := append([]tea.Msg(nil), msgs...)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 500, "message loop did not settle")
		msg := queue[0]
		queue = queue[1:]
		next, cmd := m.Update(msg)
		m = next.(Model)
		for _, out := range collect(cmd) {
			switch out.(type) {
			case spinner.TickMsg, tickMsg, tea.QuitMsg:
				continue
			}
			queue = append(queue, out)
		}
	}
	return m
}

func newTestModel(t *testing.T, api *fakeAPI, store *state.Store) Model {
	t.Helper()
	table, err := NewRouteTable()
	require.NoError(t, err)
	if store == nil {
		store = &state.Store{}
	}
	m := New(Options{
		Context:  context.Background(),
		Client:   api,
		Store:    store,
		Resolver: routes.NewResolver(table),
	})
	return settle(t, m, tea.WindowSizeMsg{Width: 130, Height: 40})
}

// testEnv builds a screen environment for driving a screen directly.
func testEnv(t *testing.T, api *fakeAPI, store *state.Store) screenEnv {
	t.Helper()
	table, err := NewRouteTable()
	require.NoError(t, err)
	if store == nil {
		store = &state.Store{}
	}
	return screenEnv{
		ctx:    context.Background(),
		appCtx: context.Background(),
		client: api,
		store:  store,
		table:  table,
		log:    logging.Discard(),
		keys:   DefaultKeyMap(),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// navTargets returns the targets of the navigation messages in msgs.
func navTargets(msgs []tea.Msg) []navigateMsg {
	var out []navigateMsg
	for _, msg := range msgs {
		if nav, ok := msg.(navigateMsg); ok {
			out = append(out, nav)
		}
	}
	return out
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("  abc ", 10))
	assert.Equal(t, "ab", truncate("abcd", 2))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "abc", truncate("abc", 0))
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "", truncateMiddle("  ", 10))
	assert.Equal(t, "ab", truncateMiddle("abcd", 2))
	got := truncateMiddle("/edit-weekly-plan/123456", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.Equal(t, "/edi…23456", got)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", errorText(nil))
	assert.Equal(t, "404 not found", errorText(&mealapi.APIError{StatusCode: 404, Message: "not found"}))
	assert.Equal(t, "backend returned status 502", errorText(&mealapi.APIError{StatusCode: 502}))
	assert.Equal(t, "unavailable", errorText(mealapi.ErrBackendUnavailable))
	assert.Equal(t, "offline", errorText(errors.New("dial tcp: connection refused")))
	assert.Equal(t, "timeout", errorText(context.DeadlineExceeded))
	assert.Equal(t, "boom", errorText(errors.New("boom")))
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "", formatTimestamp(time.Time{}, now))
	assert.Equal(t, "11:59:30 (now)", formatTimestamp(now.Add(-30*time.Second), now))
	assert.Equal(t, "11:45:00 (15m ago)", formatTimestamp(now.Add(-15*time.Minute), now))
	assert.Equal(t, "09:00:00 (3h ago)", formatTimestamp(now.Add(-3*time.Hour), now))
}

func TestCursorList(t *testing.T) {
	keys := DefaultKeyMap()
	var c cursorList

	assert.True(t, c.handleKey(keyRunes("j"), keys, 3, 10))
	assert.Equal(t, 1, c.cursor)
	c.handleKey(keyRunes("G"), keys, 3, 10)
	assert.Equal(t, 2, c.cursor)
	c.handleKey(keyRunes("j"), keys, 3, 10)
	assert.Equal(t, 2, c.cursor, "stays on the last row")
	assert.False(t, c.handleKey(keyRunes("x"), keys, 3, 10))

	c.clamp(0)
	assert.Equal(t, 0, c.cursor)

	c = cursorList{cursor: 9}
	start, end := c.window(20, 5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 10, end)
}
