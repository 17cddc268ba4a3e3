package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/state"
)

// mealScreen shows one saved meal; it serves both /meal/:id and
// /custom-meal/:id.
type mealScreen struct {
	env      screenEnv
	loc      location
	id       int64
	idErr    error
	snapshot state.Snapshot
	load     loadState
	detail   viewport.Model
	confirm  bool
	width    int
}

func newMealScreen(env screenEnv, loc location) screen {
	s := &mealScreen{
		env:      env,
		loc:      loc,
		snapshot: env.store.Snapshot(),
		load:     newLoadState(),
		detail:   viewport.New(0, 0),
	}
	s.id, s.idErr = parseID(loc.Params.Get("id"))
	return s
}

// parseID reads a positive numeric entity id from a path parameter.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", raw)
	}
	return id, nil
}

func (s *mealScreen) Init() tea.Cmd {
	if s.idErr != nil {
		return nil
	}
	if _, ok := s.snapshot.Meal(s.id); !ok {
		return tea.Batch(s.load.start(), refreshStore(s.env))
	}
	return nil
}

func (s *mealScreen) meal() (mealapi.Meal, bool) {
	if s.idErr != nil {
		return mealapi.Meal{}, false
	}
	return s.snapshot.Meal(s.id)
}

func (s *mealScreen) Title() string {
	if m, ok := s.meal(); ok {
		return m.Name
	}
	if s.loc.Name == RouteCustomMealView {
		return "Custom meal"
	}
	return "Meal"
}

func (s *mealScreen) Capturing() bool { return false }

func (s *mealScreen) Hints() []hint {
	if s.confirm {
		return []hint{{"d", "Confirm delete"}, {"esc", "Cancel"}}
	}
	return []hint{{"j/k", "Scroll"}, {"f", "Favorite"}, {"d", "Delete"}, {"r", "Reload"}}
}

func (s *mealScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.width = msg.width
		s.detail.Width = max(msg.width-4, 10)
		s.detail.Height = max(msg.height-2, 1)
		s.render()
		return s, nil

	case snapshotMsg:
		s.snapshot = state.Snapshot(msg)
		s.render()
		return s, nil

	case resultMsg[state.Snapshot]:
		s.load.done(msg.err)
		if msg.err == nil {
			s.snapshot = msg.value
		}
		s.render()
		return s, nil

	case writeMsg[mealapi.Meal]:
		s.snapshot = s.env.store.Snapshot()
		s.render()
		return s, nil

	case deletedMsg:
		if msg.err != nil {
			return s, nil
		}
		return s, replaceWith(s.env.pathFor(RouteSavedMeals))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.load.update(msg)
}

func (s *mealScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := s.env.keys
	confirm := s.confirm
	s.confirm = false

	m, ok := s.meal()
	switch {
	case key.Matches(msg, keys.Refresh):
		return s, tea.Batch(s.load.start(), refreshStore(s.env))
	case !ok:
		return s, nil
	case key.Matches(msg, keys.Favorite):
		return s, toggleFavorite(s.env, m.ID)
	case key.Matches(msg, keys.Delete):
		if !confirm {
			s.confirm = true
			return s, flash(flashInfo, "Press d again to delete "+m.Name)
		}
		return s, deleteMeal(s.env, m.ID)
	case key.Matches(msg, keys.Escape):
		return s, nil
	}

	var cmd tea.Cmd
	s.detail, cmd = s.detail.Update(msg)
	return s, cmd
}

func (s *mealScreen) render() {
	if m, ok := s.meal(); ok {
		s.detail.SetContent(mealDetail(m, s.detail.Width))
	}
}

func (s *mealScreen) View(v viewContext) string {
	if s.idErr != nil {
		return box(v, s.Title(), v.styles.DangerText.Render("Invalid meal address")+"\n"+
			v.styles.MutedText.Render(s.idErr.Error()))
	}
	m, ok := s.meal()
	if !ok {
		if out, loaded := s.load.view(v, "meal"); !loaded {
			return box(v, s.Title(), out)
		}
		return box(v, s.Title(), v.styles.WarningText.Render(fmt.Sprintf("Meal #%d is not saved.", s.id))+"\n"+
			v.styles.MutedText.Render("It may have been deleted. Press [ to go back."))
	}

	var tags []string
	if m.Favorite {
		tags = append(tags, v.styles.TagStyle(tagFavorite).Render("favorite"))
	}
	if m.Custom() {
		tags = append(tags, v.styles.TagStyle(tagCustom).Render("custom"))
	} else {
		tags = append(tags, v.styles.TagStyle(tagImported).Render("imported"))
	}
	header := strings.Join(tags, " ")
	return box(v, m.Name, header+"\n"+s.detail.View())
}

// mealDetail renders a saved meal for the viewport.
func mealDetail(m mealapi.Meal, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 10))
	var b strings.Builder
	if meta := strings.Join(nonEmpty(m.Category, m.Area), " · "); meta != "" {
		b.WriteString(meta)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Saved %d× · cooked %d×\n", m.SavedCount, m.CookedCount)

	b.WriteString("\nIngredients\n")
	ingredients := splitIngredients(m.Ingredients)
	if len(ingredients) == 0 {
		b.WriteString("  none listed\n")
	}
	for _, ing := range ingredients {
		b.WriteString("  • ")
		b.WriteString(ing)
		b.WriteString("\n")
	}
	if strings.TrimSpace(m.Instructions) != "" {
		b.WriteString("\nInstructions\n")
		b.WriteString(wrap.Render(strings.TrimSpace(m.Instructions)))
		b.WriteString("\n")
	}
	if m.Thumbnail != "" {
		b.WriteString("\n")
		b.WriteString(m.Thumbnail)
		b.WriteString("\n")
	}
	return b.String()
}

// splitIngredients splits the stored comma separated ingredient list.
func splitIngredients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
