// Package state shares backend data between the poller and the UI.
//
// # Overview
//
// The poller periodically fetches saved meals and weekly plans and hands them
// to Store.Update. The UI reads Store.Snapshot on its refresh tick and after
// navigation. Screens that mutate data (favorite toggles, deletes, plan
// edits) write the server's reply back with ReplaceMeal, RemoveMeal,
// ReplacePlan and RemovePlan so lists reflect the change before the next poll.
//
//	Poller                       UI
//	SavedMeals()                 Snapshot()
//	WeeklyPlans()      mutex        render
//	store.Update()  ──────────→  ReplaceMeal()/RemovePlan()
//
// # Update Semantics
//
// A successful Update replaces meals and plans, clears LastError and resets
// ConsecutiveFailures. A failed Update keeps the previous data and records the
// error, so the UI keeps showing the last good lists with an offline banner.
// IsOffline is true after two consecutive failures.
//
// # Copying
//
// Update and Snapshot copy slices and the maps inside each WeeklyPlan. A
// screen may edit the plan it got from a snapshot without affecting the
// store or other screens.
//
// The zero Store is ready to use.
package state
