package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mealplan/internal/mealapi"
)

const opShopping = "shopping list"

// maxMultiplier bounds the portion multiplier.
const maxMultiplier = 20

// shoppingScreen shows the aggregated ingredients of a plan. The portion
// multiplier lives in the location (?multiplier=) so it survives history.
type shoppingScreen struct {
	env        screenEnv
	loc        location
	planID     int64
	idErr      error
	multiplier int
	list       mealapi.ShoppingList
	load       loadState
	body       viewport.Model
}

func newShoppingScreen(env screenEnv, loc location) screen {
	s := &shoppingScreen{
		env:        env,
		loc:        loc,
		multiplier: min(loc.queryInt("multiplier", 1), maxMultiplier),
		load:       newLoadState(),
		body:       viewport.New(0, 0),
	}
	s.planID, s.idErr = parseID(loc.Params.Get("planId"))
	return s
}

func (s *shoppingScreen) Init() tea.Cmd {
	if s.idErr != nil {
		return nil
	}
	client, id, n := s.env.client, s.planID, s.multiplier
	return tea.Batch(s.load.start(), load(s.env, opShopping, func(ctx context.Context) (mealapi.ShoppingList, error) {
		return client.ShoppingList(ctx, id, n)
	}))
}

func (s *shoppingScreen) Title() string {
	if s.idErr != nil {
		return "Shopping list"
	}
	if p, ok := s.env.store.Snapshot().Plan(s.planID); ok {
		return fmt.Sprintf("Shopping list · week %d", p.Week)
	}
	return fmt.Sprintf("Shopping list · plan %d", s.planID)
}

func (s *shoppingScreen) Capturing() bool { return false }

func (s *shoppingScreen) Hints() []hint {
	return []hint{{"+/-", fmt.Sprintf("Portions ×%d", s.multiplier)}, {"e", "Edit plan"}, {"r", "Reload"}, {"j/k", "Scroll"}}
}

// target returns this screen's location with multiplier n.
func (s *shoppingScreen) target(n int) string {
	base := planTarget(s.env, RouteShoppingList, s.planID)
	if n <= 1 {
		return base
	}
	return base + "?multiplier=" + strconv.Itoa(n)
}

func (s *shoppingScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		s.body.Width = max(msg.width-4, 10)
		s.body.Height = max(msg.height-2, 1)
		s.render()
		return s, nil

	case resultMsg[mealapi.ShoppingList]:
		s.load.done(msg.err)
		if msg.err == nil {
			s.list = msg.value
			s.render()
		}
		return s, nil

	case tea.KeyMsg:
		keys := s.env.keys
		switch {
		case s.idErr != nil:
			return s, nil
		case key.Matches(msg, keys.More):
			if s.multiplier < maxMultiplier {
				return s, replaceWith(s.target(s.multiplier + 1))
			}
			return s, nil
		case key.Matches(msg, keys.Less):
			if s.multiplier > 1 {
				return s, replaceWith(s.target(s.multiplier - 1))
			}
			return s, nil
		case key.Matches(msg, keys.Refresh):
			return s, s.Init()
		case key.Matches(msg, keys.Edit):
			return s, navigateTo(planTarget(s.env, RouteEditWeeklyPlan, s.planID))
		}
		var cmd tea.Cmd
		s.body, cmd = s.body.Update(msg)
		return s, cmd
	}
	return s, s.load.update(msg)
}

func (s *shoppingScreen) render() {
	var b strings.Builder
	width := 0
	for _, item := range s.list.Items {
		width = max(width, len([]rune(item.Amount)))
	}
	for _, item := range s.list.Items {
		b.WriteString("  ")
		b.WriteString(padRight(item.Amount, width))
		b.WriteString("  ")
		b.WriteString(item.Ingredient)
		b.WriteString("\n")
	}
	if len(s.list.SkippedMeals) > 0 {
		b.WriteString("\nNot included (ingredients could not be read):\n")
		for _, name := range s.list.SkippedMeals {
			b.WriteString("  • ")
			b.WriteString(name)
			b.WriteString("\n")
		}
	}
	s.body.SetContent(b.String())
}

func (s *shoppingScreen) View(v viewContext) string {
	if s.idErr != nil {
		return box(v, s.Title(), v.styles.DangerText.Render("Invalid plan address")+"\n"+
			v.styles.MutedText.Render(s.idErr.Error()))
	}
	if out, ok := s.load.view(v, "shopping list"); !ok {
		return box(v, s.Title(), out)
	}
	header := v.styles.MutedText.Render(fmt.Sprintf("%d ingredients · portions ×%d", len(s.list.Items), s.multiplier))
	if len(s.list.Items) == 0 && len(s.list.SkippedMeals) == 0 {
		return box(v, s.Title(), header+"\n\n"+v.styles.FaintText.Render("This plan has no meals yet."))
	}
	return box(v, s.Title(), header+"\n"+s.body.View())
}
