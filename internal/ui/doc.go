// Package ui provides the Bubble Tea terminal interface for mealplan.
//
// # Architecture Overview
//
// Every screen is an addressable location. A location is a path such as
// /shopping-list/42?multiplier=2, resolved against the application's route
// table (routes.go) by a routes.Resolver handed in through Options. The
// resolved entry carries a ScreenFactory that builds the screen.
//
// Navigation is a message processed by Model.Update, the single event loop:
//
//  1. navigateMsg (or backMsg / forwardMsg) arrives
//  2. the target is resolved; unmatched paths get the not-found screen
//  3. the previous screen's context is cancelled and the navigation
//     sequence number is bumped
//  4. history is updated (push, replace, or cursor move)
//  5. the new screen's Init command starts its data loads
//
// Screens load data with tea.Cmds. Results are tagged with the sequence
// number of the navigation that started them; results that arrive after a
// later navigation are dropped before they reach any screen.
//
// Writes (saves, favorites, deletes) run on the program's context instead of
// the screen's, so leaving a screen does not cancel them. Their results update
// the store and the status line whichever screen is current; the screen that
// started the write sees the result only if it is still current.
//
// # Package Structure
//
//   - app.go: Model, navigation, key routing and Run
//   - navigation.go: navigation messages and the history stacks
//   - routes.go: route names, the route table and jump targets
//   - screen.go: the screen interface, locations and async results
//   - header.go: header, nav bar, command bar and help overlay
//   - search.go, saved.go, meal.go, add_meal.go: recipe and meal screens
//   - plans.go, plan_editor.go, shopping.go: weekly plan screens
//   - stats.go: statistics
//   - notfound.go: fallback for unmatched locations
//   - theme.go, style_helpers.go, widgets.go, strings.go, layout.go: rendering
//
// # Key Bindings
//
//   - : or g: Type a location, like a browser address bar
//   - 1-6: Jump to the locations without parameters, in table order
//   - backspace or [: Back; ]: Forward
//   - T: Cycle theme; ?: Help; q or ctrl+c: Quit
//
// Screens add their own bindings; the command bar shows them.
//
// # External Dependencies
//
//   - mealapi.API: backend calls
//   - state.Store: saved meals and plans kept fresh by the poller
//   - routes: route table and resolver
//   - prefs: theme and last location persistence
package ui
