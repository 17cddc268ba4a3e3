package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mealplan/internal/mealapi"
)

const (
	opTopSaved     = "top saved"
	opTotalSaved   = "total saved"
	opDistribution = "category distribution"
)

// statsScreen shows the backend's usage statistics.
type statsScreen struct {
	env screenEnv
	loc location

	top      []mealapi.Meal
	total    int64
	dist     []mealapi.CategoryCount
	topLoad  loadState
	sumLoad  loadState
	distLoad loadState
}

func newStatsScreen(env screenEnv, loc location) screen {
	return &statsScreen{
		env:      env,
		loc:      loc,
		topLoad:  newLoadState(),
		sumLoad:  newLoadState(),
		distLoad: newLoadState(),
	}
}

func (s *statsScreen) Init() tea.Cmd {
	client := s.env.client
	return tea.Batch(
		s.topLoad.start(),
		s.sumLoad.start(),
		s.distLoad.start(),
		load(s.env, opTopSaved, func(ctx context.Context) ([]mealapi.Meal, error) {
			return client.TopSavedMeals(ctx)
		}),
		load(s.env, opTotalSaved, func(ctx context.Context) (int64, error) {
			return client.TotalSavedCount(ctx)
		}),
		load(s.env, opDistribution, func(ctx context.Context) ([]mealapi.CategoryCount, error) {
			return client.CategoryDistribution(ctx)
		}),
	)
}

func (s *statsScreen) Title() string   { return "Statistics" }
func (s *statsScreen) Capturing() bool { return false }
func (s *statsScreen) Hints() []hint   { return []hint{{"r", "Reload"}} }

func (s *statsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[[]mealapi.Meal]:
		s.topLoad.done(msg.err)
		s.top = msg.value
		return s, nil
	case resultMsg[int64]:
		s.sumLoad.done(msg.err)
		s.total = msg.value
		return s, nil
	case resultMsg[[]mealapi.CategoryCount]:
		s.distLoad.done(msg.err)
		s.dist = msg.value
		return s, nil
	case tea.KeyMsg:
		if key.Matches(msg, s.env.keys.Refresh) {
			return s, s.Init()
		}
		return s, nil
	}
	return s, tea.Batch(s.topLoad.update(msg), s.sumLoad.update(msg), s.distLoad.update(msg))
}

func (s *statsScreen) View(v viewContext) string {
	inner := max(v.width-4, 20)
	var b strings.Builder

	b.WriteString(v.styles.AccentText.Bold(true).Render("Total saves"))
	b.WriteString("\n")
	if out, ok := s.sumLoad.view(v, "total"); !ok {
		b.WriteString(out)
	} else {
		b.WriteString(v.styles.Text.Bold(true).Render(fmt.Sprintf("%d", s.total)))
	}
	b.WriteString("\n\n")

	b.WriteString(v.styles.AccentText.Bold(true).Render("Most saved meals"))
	b.WriteString("\n")
	if out, ok := s.topLoad.view(v, "top meals"); !ok {
		b.WriteString(out)
	} else if len(s.top) == 0 {
		b.WriteString(v.styles.FaintText.Render("No meals saved yet."))
	} else {
		for i, m := range s.top {
			fmt.Fprintf(&b, "%s %s %s\n",
				v.styles.WarningText.Render(fmt.Sprintf("%d.", i+1)),
				v.styles.Text.Render(truncate(m.Name, inner-16)),
				v.styles.MutedText.Render(fmt.Sprintf("(%d×)", m.SavedCount)))
		}
	}
	b.WriteString("\n")

	b.WriteString(v.styles.AccentText.Bold(true).Render("Categories"))
	b.WriteString("\n")
	if out, ok := s.distLoad.view(v, "categories"); !ok {
		b.WriteString(out)
	} else if len(s.dist) == 0 {
		b.WriteString(v.styles.FaintText.Render("No categories yet."))
	} else {
		b.WriteString(renderBars(v, s.dist, inner))
	}
	return box(v, s.Title(), b.String())
}

// renderBars draws one horizontal bar per category, scaled to the largest.
func renderBars(v viewContext, dist []mealapi.CategoryCount, width int) string {
	labelW := 0
	var top int64
	for _, c := range dist {
		labelW = max(labelW, lipgloss.Width(c.Category))
		top = max(top, c.Count)
	}
	labelW = min(labelW, 16)
	barMax := max(width-labelW-8, 5)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(v.theme.Accent))

	var b strings.Builder
	for _, c := range dist {
		n := 0
		if top > 0 {
			n = int(c.Count * int64(barMax) / top)
		}
		if c.Count > 0 {
			n = max(n, 1)
		}
		b.WriteString(v.styles.MutedText.Render(padRight(truncate(c.Category, labelW), labelW)))
		b.WriteString(" ")
		b.WriteString(bar.Render(strings.Repeat("█", n)))
		b.WriteString(" ")
		b.WriteString(v.styles.Text.Render(fmt.Sprintf("%d", c.Count)))
		b.WriteString("\n")
	}
	return b.String()
}
