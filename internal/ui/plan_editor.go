package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/state"
)

const (
	opLoadPlan = "load plan"
	opSavePlan = "save plan"
)

// planEditor creates a weekly plan (/create-weekly-plans) or edits the meals
// of an existing one (/edit-weekly-plan/:planId).
type planEditor struct {
	env      screenEnv
	loc      location
	create   bool
	planID   int64
	idErr    error
	draft    mealapi.WeeklyPlan
	loaded   bool
	edited   bool
	snapshot state.Snapshot
	load     loadState
	saving   bool

	week   textinput.Model
	days   cursorList
	picker cursorList
	pick   bool
	rows   int
}

func newCreatePlanScreen(env screenEnv, loc location) screen {
	_, isoWeek := time.Now().ISOWeek()
	s := newPlanEditor(env, loc)
	s.create = true
	s.loaded = true
	s.draft = mealapi.WeeklyPlan{
		Week:         isoWeek,
		Meals:        map[string]int64{},
		PortionSizes: map[string]int{},
	}
	if w := loc.queryInt("week", 0); w > 0 {
		s.draft.Week = w
	}
	s.week.SetValue(strconv.Itoa(s.draft.Week))
	return s
}

func newEditPlanScreen(env screenEnv, loc location) screen {
	s := newPlanEditor(env, loc)
	s.planID, s.idErr = parseID(loc.Params.Get("planId"))
	if s.idErr == nil {
		// The polled copy is shown until the fetch in Init returns.
		if p, ok := s.snapshot.Plan(s.planID); ok {
			s.setDraft(p)
		}
	}
	return s
}

func newPlanEditor(env screenEnv, loc location) *planEditor {
	week := textinput.New()
	week.Prompt = "Week: "
	week.CharLimit = 2
	week.Width = 4
	week.Validate = func(v string) error {
		for _, r := range v {
			if r < '0' || r > '9' {
				return fmt.Errorf("week must be a number")
			}
		}
		return nil
	}
	return &planEditor{
		env:      env,
		loc:      loc,
		snapshot: env.store.Snapshot(),
		load:     newLoadState(),
		week:     week,
	}
}

func (s *planEditor) setDraft(p mealapi.WeeklyPlan) {
	s.draft = p.Clone()
	if s.draft.Meals == nil {
		s.draft.Meals = map[string]int64{}
	}
	if s.draft.PortionSizes == nil {
		s.draft.PortionSizes = map[string]int{}
	}
	s.loaded = true
}

func (s *planEditor) Init() tea.Cmd {
	if s.idErr != nil || s.create {
		return nil
	}
	client, id := s.env.client, s.planID
	return tea.Batch(s.load.start(), load(s.env, opLoadPlan, func(ctx context.Context) (mealapi.WeeklyPlan, error) {
		return client.WeeklyPlan(ctx, id)
	}))
}

func (s *planEditor) Title() string {
	if s.create {
		return "New weekly plan"
	}
	if s.loaded {
		return fmt.Sprintf("Edit week %d", s.draft.Week)
	}
	return "Edit weekly plan"
}

func (s *planEditor) Capturing() bool { return s.week.Focused() }

func (s *planEditor) Hints() []hint {
	switch {
	case s.week.Focused():
		return []hint{{"tab", "Days"}, {"ctrl+s", "Save"}}
	case s.pick:
		return []hint{{"j/k", "Navigate"}, {"enter", "Choose"}, {"esc", "Cancel"}}
	}
	h := []hint{{"enter", "Pick meal"}, {"x", "Clear day"}}
	if s.create {
		h = append(h, hint{"+/-", "Portions"}, hint{"tab", "Week"})
	}
	return append(h, hint{"ctrl+s", "Save"})
}

// meals returns the meals that can be planned, by name.
func (s *planEditor) meals() []mealapi.Meal {
	out := append([]mealapi.Meal(nil), s.snapshot.Meals...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (s *planEditor) day() string {
	return mealapi.Weekdays[min(s.days.cursor, len(mealapi.Weekdays)-1)]
}

func (s *planEditor) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.rows = msg.height
		return s, nil

	case snapshotMsg:
		s.snapshot = state.Snapshot(msg)
		return s, nil

	case resultMsg[mealapi.WeeklyPlan]:
		s.load.done(msg.err)
		switch {
		case msg.err != nil && s.loaded:
			return s, flash(flashError, "Could not refresh plan: "+errorText(msg.err))
		case msg.err == nil && !s.edited:
			s.setDraft(msg.value)
		}
		return s, nil

	case writeMsg[mealapi.WeeklyPlan]:
		s.saving = false
		if msg.err != nil {
			return s, nil
		}
		return s, replaceWith(s.env.pathFor(RouteWeeklyPlans))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.load.update(msg)
}

func (s *planEditor) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := s.env.keys
	if s.idErr != nil || !s.loaded {
		if key.Matches(msg, keys.Refresh) && s.idErr == nil {
			return s, s.Init()
		}
		return s, nil
	}

	if key.Matches(msg, keys.Submit) {
		return s, s.submit()
	}

	if s.week.Focused() {
		if key.Matches(msg, keys.NextItem) || key.Matches(msg, keys.Escape) || key.Matches(msg, keys.Confirm) {
			s.week.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.week, cmd = s.week.Update(msg)
		return s, cmd
	}

	if s.pick {
		meals := s.meals()
		switch {
		case key.Matches(msg, keys.Escape):
			s.pick = false
		case key.Matches(msg, keys.Open):
			if s.picker.cursor < len(meals) {
				s.draft.Meals[s.day()] = meals[s.picker.cursor].ID
				s.edited = true
				if s.create && s.draft.PortionSizes[s.day()] == 0 {
					s.draft.PortionSizes[s.day()] = 1
				}
			}
			s.pick = false
		default:
			s.picker.handleKey(msg, keys, len(meals), s.rows)
		}
		return s, nil
	}

	day := s.day()
	switch {
	case key.Matches(msg, keys.NextItem), key.Matches(msg, keys.PrevItem):
		if s.create {
			return s, s.week.Focus()
		}
	case key.Matches(msg, keys.Open):
		if len(s.snapshot.Meals) == 0 {
			return s, flash(flashInfo, "No saved meals to plan. Save some from the search first.")
		}
		s.pick = true
		s.picker = cursorList{}
		for i, m := range s.meals() {
			if m.ID == s.draft.Meals[day] {
				s.picker.cursor = i
			}
		}
	case key.Matches(msg, keys.Clear):
		delete(s.draft.Meals, day)
		delete(s.draft.PortionSizes, day)
		s.edited = true
	case key.Matches(msg, keys.More):
		if s.create && s.draft.Meals[day] != 0 {
			s.draft.PortionSizes[day] = max(s.draft.PortionSizes[day], 1) + 1
		}
	case key.Matches(msg, keys.Less):
		if s.create && s.draft.Meals[day] != 0 {
			s.draft.PortionSizes[day] = max(s.draft.PortionSizes[day]-1, 1)
		}
	default:
		s.days.handleKey(msg, keys, len(mealapi.Weekdays), len(mealapi.Weekdays))
	}
	return s, nil
}

// submit sends the draft. Days without a meal are left out.
func (s *planEditor) submit() tea.Cmd {
	if s.saving {
		return nil
	}
	meals := make(map[string]int64, len(s.draft.Meals))
	for day, id := range s.draft.Meals {
		if id != 0 {
			meals[day] = id
		}
	}
	client := s.env.client

	if !s.create {
		s.saving = true
		id := s.planID
		return savePlan(s.env, func(ctx context.Context) (mealapi.WeeklyPlan, error) {
			return client.UpdateWeeklyPlan(ctx, id, meals)
		})
	}

	week, err := strconv.Atoi(strings.TrimSpace(s.week.Value()))
	if err != nil || week < 1 || week > 53 {
		return flash(flashError, "Week must be between 1 and 53")
	}
	for _, p := range s.snapshot.Plans {
		if p.Week == week {
			return flash(flashError, fmt.Sprintf("Week %d already has a plan", week))
		}
	}
	portions := make(map[string]int, len(meals))
	for day := range meals {
		portions[day] = max(s.draft.PortionSizes[day], 1)
	}
	s.saving = true
	plan := mealapi.WeeklyPlan{Week: week, Meals: meals, PortionSizes: portions}
	return savePlan(s.env, func(ctx context.Context) (mealapi.WeeklyPlan, error) {
		return client.CreateWeeklyPlan(ctx, plan)
	})
}

func savePlan(env screenEnv, run func(ctx context.Context) (mealapi.WeeklyPlan, error)) tea.Cmd {
	return write(env, writeOp[mealapi.WeeklyPlan]{
		op:      opSavePlan,
		run:     run,
		apply:   func(store *state.Store, p mealapi.WeeklyPlan) { store.ReplacePlan(p) },
		success: func(p mealapi.WeeklyPlan) string { return fmt.Sprintf("Saved plan for week %d", p.Week) },
		failure: "Save failed",
	})
}

func (s *planEditor) View(v viewContext) string {
	if s.idErr != nil {
		return box(v, s.Title(), v.styles.DangerText.Render("Invalid plan address")+"\n"+
			v.styles.MutedText.Render(s.idErr.Error()))
	}
	if !s.loaded {
		out, _ := s.load.view(v, "weekly plan")
		return box(v, s.Title(), out)
	}

	if s.pick {
		meals := s.meals()
		rows := make([]string, len(meals))
		for i, m := range meals {
			rows[i] = mealRow(m)
		}
		return box(v, "Meal for "+s.day(), renderList(v, &s.picker, rows, v.width-2, bodyHeight(v), "No saved meals."))
	}

	var b strings.Builder
	if s.create {
		b.WriteString(s.week.View())
	} else {
		b.WriteString(v.styles.MutedText.Render(fmt.Sprintf("Week: %d", s.draft.Week)))
	}
	b.WriteString("\n\n")

	rows := make([]string, len(mealapi.Weekdays))
	for i, day := range mealapi.Weekdays {
		meal := "-"
		if id := s.draft.Meals[day]; id != 0 {
			meal = s.snapshot.MealName(id)
			if s.create {
				meal += fmt.Sprintf("  ×%d", max(s.draft.PortionSizes[day], 1))
			}
		}
		rows[i] = padRight(day, 11) + meal
	}
	days := s.days
	if s.week.Focused() {
		days.cursor = -1
	}
	b.WriteString(renderList(v, &days, rows, v.width-2, len(rows), ""))
	if s.saving {
		b.WriteString("\n\n")
		b.WriteString(v.styles.AccentText.Render("Saving..."))
	}
	return box(v, s.Title(), b.String())
}
