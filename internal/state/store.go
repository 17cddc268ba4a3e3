package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/mealplan/internal/mealapi"
)

// Snapshot represents the latest backend data available to the UI.
type Snapshot struct {
	Meals               []mealapi.Meal
	Plans               []mealapi.WeeklyPlan
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the backend has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Meal returns the saved meal with id.
func (s Snapshot) Meal(id int64) (mealapi.Meal, bool) {
	for _, m := range s.Meals {
		if m.ID == id {
			return m, true
		}
	}
	return mealapi.Meal{}, false
}

// Plan returns the weekly plan with id.
func (s Snapshot) Plan(id int64) (mealapi.WeeklyPlan, bool) {
	for _, p := range s.Plans {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return mealapi.WeeklyPlan{}, false
}

// MealName returns the name of the saved meal with id, or a placeholder.
func (s Snapshot) MealName(id int64) string {
	if m, ok := s.Meal(id); ok {
		return m.Name
	}
	return fmt.Sprintf("meal #%d", id)
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(meals []mealapi.Meal, plans []mealapi.WeeklyPlan, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Meals = cloneMeals(meals)
	s.snapshot.Plans = clonePlans(plans)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// ReplaceMeal updates one meal in place after a mutation so the UI does not
// wait for the next poll. Unknown ids are appended.
func (s *Store) ReplaceMeal(meal mealapi.Meal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Meals {
		if s.snapshot.Meals[i].ID == meal.ID {
			s.snapshot.Meals[i] = meal
			return
		}
	}
	s.snapshot.Meals = append(s.snapshot.Meals, meal)
}

// RemoveMeal drops a deleted meal.
func (s *Store) RemoveMeal(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snapshot.Meals[:0]
	for _, m := range s.snapshot.Meals {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.snapshot.Meals = kept
}

// ReplacePlan updates one plan in place after a mutation. Unknown ids are appended.
func (s *Store) ReplacePlan(plan mealapi.WeeklyPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan = plan.Clone()
	for i := range s.snapshot.Plans {
		if s.snapshot.Plans[i].ID == plan.ID {
			s.snapshot.Plans[i] = plan
			return
		}
	}
	s.snapshot.Plans = append(s.snapshot.Plans, plan)
}

// RemovePlan drops a deleted plan.
func (s *Store) RemovePlan(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snapshot.Plans[:0]
	for _, p := range s.snapshot.Plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.snapshot.Plans = kept
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Meals = cloneMeals(s.snapshot.Meals)
	snap.Plans = clonePlans(s.snapshot.Plans)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneMeals(meals []mealapi.Meal) []mealapi.Meal {
	if len(meals) == 0 {
		return nil
	}
	dup := make([]mealapi.Meal, len(meals))
	copy(dup, meals)
	return dup
}

func clonePlans(plans []mealapi.WeeklyPlan) []mealapi.WeeklyPlan {
	if len(plans) == 0 {
		return nil
	}
	dup := make([]mealapi.WeeklyPlan, len(plans))
	for i, p := range plans {
		dup[i] = p.Clone()
	}
	return dup
}
