package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Navigation between locations
	Address key.Binding
	Back    key.Binding
	Forward key.Binding
	Jump    key.Binding // 1-6, static locations

	// Movement inside a screen
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding
	NextItem key.Binding
	PrevItem key.Binding

	// Screen actions
	Search   key.Binding
	Filter   key.Binding
	Refresh  key.Binding
	Save     key.Binding
	Favorite key.Binding
	Delete   key.Binding
	Edit     key.Binding
	New      key.Binding
	Shopping key.Binding
	More     key.Binding
	Less     key.Binding
	Clear    key.Binding

	// Input
	Confirm key.Binding
	Submit  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		Address: key.NewBinding(
			key.WithKeys(":", "g"),
			key.WithHelp(":/g", "Go to path"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "["),
			key.WithHelp("bksp/[", "Back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Forward"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "Jump to location"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "Open"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevItem: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Browse by category/area"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Save: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Save meal"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit plan"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New"),
		),
		Shopping: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Shopping list"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More portions"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Fewer portions"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear day"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save form"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Address, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Address, k.Back, k.Forward, k.Jump},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Open},
		{k.Search, k.Filter, k.Save, k.Favorite, k.Delete, k.Refresh},
		{k.New, k.Edit, k.Shopping, k.More, k.Less, k.Clear, k.Submit},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
