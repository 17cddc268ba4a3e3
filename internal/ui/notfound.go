package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mealplan/internal/routes"
)

// notFoundScreen is shown when a target matches no route. It lists the known
// locations; the parameterless ones can be opened directly.
type notFoundScreen struct {
	env   screenEnv
	loc   location
	known []routes.Entry[ScreenFactory]
	list  cursorList
	rows  int
}

func newNotFoundScreen(env screenEnv, loc location) screen {
	s := &notFoundScreen{env: env, loc: loc}
	if env.table != nil {
		s.known = env.table.Entries()
	}
	return s
}

func (s *notFoundScreen) Init() tea.Cmd   { return nil }
func (s *notFoundScreen) Title() string   { return "Not found" }
func (s *notFoundScreen) Capturing() bool { return false }

func (s *notFoundScreen) Hints() []hint {
	return []hint{{"j/k", "Navigate"}, {"enter", "Open"}}
}

func (s *notFoundScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.rows = msg.height
	case tea.KeyMsg:
		if s.list.handleKey(msg, s.env.keys, len(s.known), s.rows) {
			return s, nil
		}
		if key.Matches(msg, s.env.keys.Open) && s.list.cursor < len(s.known) {
			e := s.known[s.list.cursor]
			if hasParams(e.Pattern) {
				return s, flash(flashInfo, e.Pattern+" needs an id; type it with :")
			}
			return s, navigateTo(s.env.pathFor(e.Name))
		}
	}
	return s, nil
}

func (s *notFoundScreen) View(v viewContext) string {
	var b strings.Builder
	b.WriteString(v.styles.DangerText.Render("No location matches "))
	b.WriteString(v.styles.AccentText.Render(truncateMiddle(s.loc.Target, max(v.width-30, 10))))
	b.WriteString("\n\n")
	b.WriteString(v.styles.MutedText.Render("Known locations:"))
	b.WriteString("\n")

	rows := make([]string, len(s.known))
	for i, e := range s.known {
		rows[i] = fmt.Sprintf("%-28s %s", e.Pattern, navLabel(e.Name))
	}
	b.WriteString(renderList(v, &s.list, rows, v.width-2, bodyHeight(v)-4, "No locations are registered."))
	return box(v, "Not found", b.String())
}
