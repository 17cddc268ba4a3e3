package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status bar: logo, location and backend state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("mealplan", styles.Logo)}

	title := "…"
	if m.screen != nil {
		title = m.screen.Title()
	}
	parts = append(parts, bg.Render(title, styles.Text.Bold(true)))

	snap := m.snapshot
	switch {
	case snap.LastError != nil && (snap.IsOffline() || !snap.HasData):
		parts = append(parts,
			bg.Render("BACKEND "+classifyConnectionError(snap.LastError), styles.DangerText),
			bg.Render("Retrying...", styles.WarningText.Bold(true)))
	case !snap.HasData:
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
		if !compact {
			parts = append(parts,
				bg.Render("Meals:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", len(snap.Meals)), styles.Text),
				bg.Render("Plans:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", len(snap.Plans)), styles.Text))
		}
	}

	if ts := formatTimestamp(snap.LastUpdated, m.now); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderNavBar renders the jump targets with the current one highlighted,
// plus the history indicators and the current path.
func (m Model) renderNavBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	var segments []string
	for i, e := range jumpTargets(m.table()) {
		label := navLabel(e.Name)
		if compact {
			label = ""
		}
		num := fmt.Sprintf("%d", i+1)
		if e.Name == m.loc.Name {
			segments = append(segments,
				bg.Render(strings.TrimSpace(num+" "+label), styles.AccentText.Bold(true).Underline(true)))
			continue
		}
		segments = append(segments,
			bg.Render(num, styles.WarningText)+ternary(label == "", "", bg.Space()+bg.Render(label, styles.MutedText)))
	}

	arrows := bg.Render(ternary(m.hist.canBack(), "◀", "◁"), styles.MutedText) +
		bg.Render(ternary(m.hist.canForward(), "▶", "▷"), styles.MutedText)
	path := m.loc.Target
	if path == "" {
		path = m.startPath
	}
	pathStyle := styles.InfoText
	if !m.loc.Found() {
		pathStyle = styles.DangerText
	}
	segments = append(segments, arrows+bg.Space()+bg.Render(truncateMiddle(path, 40), pathStyle))

	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}

// renderCommandBar renders the address bar, a flash message or the key
// hints of the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	bar := styles.Header.Width(m.width)

	if m.addressing {
		return bar.Render(m.address.View())
	}

	if m.flash.text != "" {
		style := styles.InfoText
		switch m.flash.level {
		case flashSuccess:
			style = styles.SuccessText
		case flashError:
			style = styles.DangerText
		}
		return bar.Render(bg.Render(truncate(m.flash.text, m.width-2), style))
	}

	var hints []hint
	if m.screen != nil {
		hints = append(hints, m.screen.Hints()...)
	}
	hints = append(hints,
		hint{":", "Go"},
		hint{"[", "Back"},
		hint{"?", "More"},
	)

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments,
			bg.Render(h.key, styles.AccentText)+colon+bg.Render(h.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return bar.Render(strings.Join(segments, bg.Spaces(2)))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	titles := []string{"Locations", "Lists", "Meals", "Plans", "General"}
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, group := range m.keys.FullHelp() {
		if i < len(titles) {
			b.WriteString(styles.AccentText.Bold(true).Render(titles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(m.keys.FullHelp())-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Jump"))
	b.WriteString("\n")
	for i, e := range jumpTargets(m.table()) {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%d", i+1)))
		b.WriteString(styles.Text.Render(navLabel(e.Name) + " " + e.Pattern))
		b.WriteString("\n")
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
