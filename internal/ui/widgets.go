package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cursorList tracks the selection and scroll offset of a vertical list.
type cursorList struct {
	cursor int
	offset int
}

// clamp keeps the cursor inside a list of n rows.
func (c *cursorList) clamp(n int) {
	if n <= 0 {
		c.cursor, c.offset = 0, 0
		return
	}
	c.cursor = min(max(c.cursor, 0), n-1)
}

// handleKey applies movement keys for a list of n rows showing page rows at
// a time. It reports whether the key was a movement key.
func (c *cursorList) handleKey(msg tea.KeyMsg, keys keyMap, n, page int) bool {
	page = max(page, 1)
	switch {
	case key.Matches(msg, keys.Up):
		c.cursor--
	case key.Matches(msg, keys.Down):
		c.cursor++
	case key.Matches(msg, keys.Top):
		c.cursor = 0
	case key.Matches(msg, keys.Bottom):
		c.cursor = n - 1
	case key.Matches(msg, keys.PageUp):
		c.cursor -= page / 2
	case key.Matches(msg, keys.PageDown):
		c.cursor += page / 2
	default:
		return false
	}
	c.clamp(n)
	return true
}

// window returns the visible [start, end) range for n rows in height lines,
// scrolling so the cursor stays visible.
func (c *cursorList) window(n, height int) (int, int) {
	height = max(height, 1)
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+height {
		c.offset = c.cursor - height + 1
	}
	c.offset = min(max(c.offset, 0), max(n-height, 0))
	return c.offset, min(c.offset+height, n)
}

// renderList renders rows with the cursor row highlighted.
func renderList(v viewContext, c *cursorList, rows []string, width, height int, empty string) string {
	if len(rows) == 0 {
		return v.styles.MutedText.Render(empty)
	}
	start, end := c.window(len(rows), height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := padRight(truncate(rows[i], width-2), width-2)
		if i == c.cursor {
			lines = append(lines, v.styles.Selected.Render(" "+row+" "))
			continue
		}
		lines = append(lines, " "+v.styles.Text.Render(row))
	}
	return strings.Join(lines, "\n")
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func renderTitledBox(theme Theme, title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = theme.BorderFocus
		bgColorStr = theme.FocusBg
	} else {
		borderColorStr = theme.Border
		bgColorStr = theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// bodyHeight is the number of content rows inside a titled box that fills
// the screen area.
func bodyHeight(v viewContext) int {
	return max(v.height-2, 1)
}

// box wraps content in a titled box filling the screen area.
func box(v viewContext, title, content string) string {
	return renderTitledBox(v.theme, title, content, v.width, v.height, true)
}

// loadState tracks one in-flight request with a spinner.
type loadState struct {
	spinner spinner.Model
	loading bool
	err     error
}

func newLoadState() loadState {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return loadState{spinner: s}
}

// start marks a request in flight and returns the spinner's first tick.
func (l *loadState) start() tea.Cmd {
	l.loading = true
	l.err = nil
	return l.spinner.Tick
}

func (l *loadState) done(err error) {
	l.loading = false
	l.err = err
}

// update advances the spinner while loading.
func (l *loadState) update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !l.loading {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(tick)
	return cmd
}

// view renders the spinner or the last error; ok is false when either is
// shown and the caller should not render data.
func (l loadState) view(v viewContext, what string) (string, bool) {
	if l.loading {
		return v.styles.AccentText.Render(l.spinner.View()) + " " +
			v.styles.MutedText.Render("Loading "+what+"..."), false
	}
	if l.err != nil {
		return v.styles.DangerText.Render("Could not load "+what) + "\n" +
			v.styles.MutedText.Render(errorText(l.err)) + "\n\n" +
			v.styles.FaintText.Render("r to retry"), false
	}
	return "", true
}
