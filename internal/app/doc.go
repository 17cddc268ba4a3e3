// Package app is the composition root of the mealplan client.
//
// # Startup
//
// Run performs these steps in order and returns the first error:
//
//  1. Load config from ~/.config/mealplan/config.toml (or -config)
//  2. Load preferences (theme and last visited path)
//  3. Open the log file through the logging package
//  4. Create the backend client for the configured environment
//  5. Build the route table and its resolver, logging unreachable routes
//  6. Start the background poller
//  7. Run the TUI until the user quits or the context is cancelled
//
// A route table that cannot be built is fatal: nothing starts.
//
// # Data Flow
//
//	Run()
//	  ├─> config.Load()
//	  ├─> logging.Init()
//	  ├─> mealapi.NewClient()
//	  ├─> ui.NewRouteTable() -> routes.NewResolver()
//	  ├─> StartPoller()        SavedMeals + WeeklyPlans -> state.Store
//	  └─> ui.Run()             blocks
//
// # Polling
//
// The poller refreshes saved meals and weekly plans on the configured
// interval. After a failure the next attempt waits on an exponential backoff
// that starts at the interval and doubles per consecutive failure, capped at
// the larger of 30 seconds and eight intervals. A successful poll resets it.
// Failures are recorded in the store so the header can show the backend as
// offline; they never stop the client.
//
// # Initial Location
//
// The first screen is the -path flag when given, otherwise the path saved in
// prefs when the client last navigated, otherwise "/".
package app
