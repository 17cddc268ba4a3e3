package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second

	// maxBackoff is the lowest cap on the wait after failures. Slow poll
	// intervals back off further, up to eight times the interval.
	maxBackoff = 30 * time.Second
)

// source is the subset of the backend the poller reads.
type source interface {
	SavedMeals(ctx context.Context) ([]mealapi.Meal, error)
	WeeklyPlans(ctx context.Context) ([]mealapi.WeeklyPlan, error)
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off after consecutive failures. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client source, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		retry := newPollBackOff(interval)
		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(ctx, store, client); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				wait := retry.NextBackOff()
				log.WithError(err).WithFields(logrus.Fields{
					"failures": failures,
					"retry_in": wait,
				}).Warn("poll failed")
				timer.Reset(wait)
				continue
			}
			if failures > 0 {
				log.WithField("failures", failures).Info("backend reachable again")
			}
			failures = 0
			retry.Reset()
			timer.Reset(interval)
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client source) error {
	meals, err := client.SavedMeals(ctx)
	if err != nil {
		err = fmt.Errorf("fetch saved meals: %w", err)
		store.Update(nil, nil, err)
		return err
	}
	plans, err := client.WeeklyPlans(ctx)
	if err != nil {
		err = fmt.Errorf("fetch weekly plans: %w", err)
		store.Update(nil, nil, err)
		return err
	}
	store.Update(meals, plans, nil)
	return nil
}

// newPollBackOff returns the wait policy after failed polls: it starts at
// interval, doubles per consecutive failure and never drops below interval.
func newPollBackOff(interval time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = max(maxBackoff, 8*interval)
	b.Reset()
	return b
}
