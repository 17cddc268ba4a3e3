package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the nav bar drops labels.
	LayoutCompactWidth = 100

	// LayoutSplitWidth is the minimum width for list/detail split screens.
	LayoutSplitWidth = 120
)

// Chrome rows taken by the header, nav bar and status line.
const chromeHeight = 3

// Timing constants.
const (
	// FetchTimeout bounds a single screen data request.
	FetchTimeout = 15 * time.Second

	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second

	// flashDuration is how long a status message stays visible.
	flashDuration = 4 * time.Second
)

// historyLimit caps the back stack.
const historyLimit = 100
