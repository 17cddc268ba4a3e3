package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/mealplan/internal/mealapi"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a string by removing characters from the middle,
// keeping both ends. Used for paths in the address and nav bars.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// classifyConnectionError returns a short description of a backend error
// for the header.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, mealapi.ErrBackendUnavailable) {
		return "UNAVAILABLE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// errorText renders err for a status line or an error panel.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *mealapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Sprintf("%d %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Sprintf("backend returned status %d", apiErr.StatusCode)
	}
	if kind := classifyConnectionError(err); kind != "ERROR" {
		return strings.ToLower(kind)
	}
	return truncate(err.Error(), 120)
}

// formatTimestamp formats an update time with a relative indicator.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	out := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}
