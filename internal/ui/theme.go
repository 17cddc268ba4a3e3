package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and status bars
	SurfaceAlt string // Screen panels
	FocusBg    string // Active inputs

	// List colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// TagColors color the small badges next to meals and plans.
	TagColors map[string]string
}

// Badge tags used by the screens.
const (
	tagFavorite = "favorite"
	tagCustom   = "custom"
	tagImported = "imported"
	tagOffline  = "offline"
	tagEmpty    = "empty"
)

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		tagColors:  t.TagColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	tagColors  map[string]string
	background string
	muted      string
}

// TagStyle returns a badge style for tag.
func (s Styles) TagStyle(tag string) lipgloss.Style {
	color := s.tagColors[strings.ToLower(strings.TrimSpace(tag))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with all text styles having the
// specified background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.SurfaceAlt = s.SurfaceAlt.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// Theme definitions

var themes = map[string]Theme{
	"Basil":   basilTheme(),
	"Paprika": paprikaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Basil", "Paprika", "Slate"}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return basilTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func basilTheme() Theme {
	// Everforest-like greens
	return Theme{
		Name: "Basil",

		Background: "#1e2326",
		Surface:    "#272e33",
		SurfaceAlt: "#2e383c",
		FocusBg:    "#374145",

		SelectionBg:   "#425047",
		SelectionText: "#d3c6aa",

		Border:      "#4f5b58",
		BorderMuted: "#374145",
		BorderFocus: "#a7c080",

		Text:    "#d3c6aa",
		Muted:   "#9da9a0",
		Faint:   "#7a8478",
		Accent:  "#a7c080",
		Success: "#a7c080",
		Warning: "#dbbc7f",
		Danger:  "#e67e80",
		Info:    "#7fbbb3",

		TagColors: map[string]string{
			tagFavorite: "#dbbc7f",
			tagCustom:   "#d699b6",
			tagImported: "#7fbbb3",
			tagOffline:  "#e67e80",
			tagEmpty:    "#7a8478",
		},
	}
}

func paprikaTheme() Theme {
	// Warm Gruvbox-like palette
	return Theme{
		Name: "Paprika",

		Background: "#1d2021",
		Surface:    "#282828",
		SurfaceAlt: "#32302f",
		FocusBg:    "#3c3836",

		SelectionBg:   "#504945",
		SelectionText: "#fbf1c7",

		Border:      "#665c54",
		BorderMuted: "#3c3836",
		BorderFocus: "#fe8019",

		Text:    "#ebdbb2",
		Muted:   "#bdae93",
		Faint:   "#928374",
		Accent:  "#fe8019",
		Success: "#b8bb26",
		Warning: "#fabd2f",
		Danger:  "#fb4934",
		Info:    "#83a598",

		TagColors: map[string]string{
			tagFavorite: "#fabd2f",
			tagCustom:   "#d3869b",
			tagImported: "#83a598",
			tagOffline:  "#fb4934",
			tagEmpty:    "#928374",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		TagColors: map[string]string{
			tagFavorite: "#f59e0b",
			tagCustom:   "#a78bfa",
			tagImported: "#06b6d4",
			tagOffline:  "#dc2626",
			tagEmpty:    "#64748b",
		},
	}
}
