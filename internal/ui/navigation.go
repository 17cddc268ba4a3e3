package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// navigateMsg asks the root model to resolve Target and show its screen.
// Replace overwrites the current history entry instead of pushing.
type navigateMsg struct {
	Target  string
	Replace bool
}

// backMsg and forwardMsg move through history.
type backMsg struct{}

type forwardMsg struct{}

func navigateTo(target string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{Target: target} }
}

func replaceWith(target string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{Target: target, Replace: true} }
}

func goBack() tea.Msg { return backMsg{} }

func goForward() tea.Msg { return forwardMsg{} }

// history keeps visited navigation targets.
type history struct {
	current string
	back    []string
	forward []string
}

// push records target as the new current entry and drops forward entries.
// Pushing the current target again is a reload and leaves the stacks alone.
func (h *history) push(target string) {
	if target == h.current {
		return
	}
	if h.current != "" {
		h.back = append(h.back, h.current)
		if len(h.back) > historyLimit {
			h.back = h.back[len(h.back)-historyLimit:]
		}
	}
	h.current = target
	h.forward = nil
}

// replace overwrites the current entry.
func (h *history) replace(target string) {
	h.current = target
}

func (h *history) goBack() (string, bool) {
	if len(h.back) == 0 {
		return "", false
	}
	prev := h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	h.forward = append(h.forward, h.current)
	h.current = prev
	return prev, true
}

func (h *history) goForward() (string, bool) {
	if len(h.forward) == 0 {
		return "", false
	}
	next := h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	h.back = append(h.back, h.current)
	h.current = next
	return next, true
}

func (h history) canBack() bool    { return len(h.back) > 0 }
func (h history) canForward() bool { return len(h.forward) > 0 }

// navMode says how a resolved target enters history.
type navMode int

const (
	navPush navMode = iota
	navReplace
	navHistory // back/forward already moved the cursor
)
