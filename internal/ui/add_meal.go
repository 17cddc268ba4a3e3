package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/state"
)

const opAddMeal = "add meal"

const (
	fieldName = iota
	fieldCategory
	fieldArea
	fieldIngredients
	fieldInstructions
	fieldCount
)

// addMealScreen is the form for a custom meal.
type addMealScreen struct {
	env          screenEnv
	loc          location
	inputs       [fieldInstructions]textinput.Model
	instructions textarea.Model
	focus        int // -1 when no field has focus
	saving       bool
	err          error
}

func newAddMealScreen(env screenEnv, loc location) screen {
	s := &addMealScreen{env: env, loc: loc}
	prompts := [fieldInstructions][2]string{
		fieldName:        {"Name         ", "Grandma's stew"},
		fieldCategory:    {"Category     ", "Beef"},
		fieldArea:        {"Area         ", "Irish"},
		fieldIngredients: {"Ingredients  ", "500g beef, 2 carrots, 1 onion"},
	}
	for i, p := range prompts {
		in := textinput.New()
		in.Prompt = p[0]
		in.Placeholder = p[1]
		in.CharLimit = 500
		s.inputs[i] = in
	}
	s.inputs[fieldName].CharLimit = 120
	s.inputs[fieldName].SetValue(strings.TrimSpace(loc.Query.Get("name")))

	s.instructions = textarea.New()
	s.instructions.Placeholder = "Instructions"
	s.instructions.ShowLineNumbers = false
	s.instructions.CharLimit = 5000
	return s
}

func (s *addMealScreen) Init() tea.Cmd { return s.setFocus(fieldName) }

func (s *addMealScreen) Title() string   { return "Add custom meal" }
func (s *addMealScreen) Capturing() bool { return s.focus >= 0 }

func (s *addMealScreen) Hints() []hint {
	if s.focus < 0 {
		return []hint{{"enter", "Edit"}, {"ctrl+s", "Save"}}
	}
	return []hint{{"tab", "Next field"}, {"ctrl+s", "Save"}, {"esc", "Leave form"}}
}

// setFocus focuses field i; -1 blurs every field.
func (s *addMealScreen) setFocus(i int) tea.Cmd {
	s.focus = i
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	s.instructions.Blur()
	switch {
	case i < 0:
		return nil
	case i == fieldInstructions:
		return s.instructions.Focus()
	default:
		return s.inputs[i].Focus()
	}
}

// meal builds the meal from the form.
func (s *addMealScreen) meal() mealapi.Meal {
	return mealapi.Meal{
		Name:         strings.TrimSpace(s.inputs[fieldName].Value()),
		Category:     strings.TrimSpace(s.inputs[fieldCategory].Value()),
		Area:         strings.TrimSpace(s.inputs[fieldArea].Value()),
		Ingredients:  strings.Join(splitIngredients(s.inputs[fieldIngredients].Value()), ", "),
		Instructions: strings.TrimSpace(s.instructions.Value()),
	}
}

func (s *addMealScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		for i := range s.inputs {
			s.inputs[i].Width = max(msg.width-len(s.inputs[i].Prompt)-6, 10)
		}
		s.instructions.SetWidth(max(msg.width-4, 10))
		s.instructions.SetHeight(max(msg.height-len(s.inputs)-6, 3))
		return s, nil

	case writeMsg[mealapi.Meal]:
		s.saving = false
		s.err = msg.err
		if msg.err != nil {
			return s, nil
		}
		return s, replaceWith(mealTarget(s.env, msg.value))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *addMealScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := s.env.keys
	switch {
	case key.Matches(msg, keys.Submit):
		return s, s.submit()
	case s.focus < 0:
		if key.Matches(msg, keys.Confirm) || key.Matches(msg, keys.NextItem) {
			return s, s.setFocus(fieldName)
		}
		return s, nil
	case key.Matches(msg, keys.Escape):
		return s, s.setFocus(-1)
	case key.Matches(msg, keys.NextItem):
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case key.Matches(msg, keys.PrevItem):
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case s.focus < fieldInstructions && key.Matches(msg, keys.Confirm):
		return s, s.setFocus(s.focus + 1)
	}

	var cmd tea.Cmd
	if s.focus == fieldInstructions {
		s.instructions, cmd = s.instructions.Update(msg)
	} else {
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	}
	return s, cmd
}

func (s *addMealScreen) submit() tea.Cmd {
	if s.saving {
		return nil
	}
	meal := s.meal()
	if meal.Name == "" {
		return tea.Batch(flash(flashError, "A meal needs a name"), s.setFocus(fieldName))
	}
	s.saving = true
	client := s.env.client
	return saveMeal(s.env, opAddMeal, func(ctx context.Context) (mealapi.Meal, error) {
		return client.AddCustomMeal(ctx, meal)
	})
}

// saveMeal stores a new meal and reports it by name.
func saveMeal(env screenEnv, op string, run func(ctx context.Context) (mealapi.Meal, error)) tea.Cmd {
	return write(env, writeOp[mealapi.Meal]{
		op:      op,
		run:     run,
		apply:   func(store *state.Store, m mealapi.Meal) { store.ReplaceMeal(m) },
		success: func(m mealapi.Meal) string { return "Saved " + m.Name },
		failure: "Save failed",
	})
}

func (s *addMealScreen) View(v viewContext) string {
	var b strings.Builder
	for i := range s.inputs {
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.instructions.View())
	b.WriteString("\n")
	switch {
	case s.saving:
		b.WriteString(v.styles.AccentText.Render("Saving..."))
	case s.err != nil:
		b.WriteString(v.styles.DangerText.Render(errorText(s.err)))
	}
	return box(v, s.Title(), b.String())
}
