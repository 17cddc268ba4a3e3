// Package config loads the mealplan client configuration.
//
// # Overview
//
// The client needs to know which meal-planning backend to talk to, where to
// write its log, and how often to refresh saved meals and weekly plans in the
// background. All of it lives in a small TOML file.
//
// # Configuration Discovery
//
// Load resolves the file like this:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mealplan/config.toml
//  3. If the file doesn't exist, use the defaults below
//  4. Fields that are missing or blank keep their defaults
//
// # Defaults
//
//   - environment: local
//   - endpoints.local: http://localhost:8080
//   - log_file: ~/.local/state/mealplan/mealplan.log
//   - log_level: info
//   - poll_seconds: 30
//
// # TOML Format
//
//	environment = "vm"
//	log_file = "~/.local/state/mealplan/mealplan.log"
//	log_level = "debug"
//	poll_seconds = 15
//
//	[endpoints]
//	local = "http://localhost:8080"
//	vm = "http://[2001:db8::1]:8080"
//
// # Endpoint Selection
//
// APIBaseURL returns the endpoint named by environment. When the
// MEALPLAN_API_BASE_URL environment variable is set it wins over the file.
// Selecting an environment with no endpoint and no override is a load error,
// so a typo in environment never silently talks to the wrong backend.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and unknown environments.
package config
