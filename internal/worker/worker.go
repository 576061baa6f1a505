// Package worker hosts the recurrence catch-up loop: recurrences are
// materialized up to "now" when created, and this worker keeps them current as
// later occurrences come due.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/logging"
	"github.com/riccardocatervi/JBudget-sub001/internal/service"
)

// CatchUp periodically materializes due occurrences of every active
// recurrence. Each recurrence is processed in its own atomic unit of work, so
// one failing recurrence never blocks the others.
type CatchUp struct {
	Logger     *logrus.Logger
	Recurrence *service.RecurrenceService
	Interval   time.Duration
}

// Run executes RunOnce on every tick until ctx is cancelled. The first pass
// runs immediately.
func (w *CatchUp) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx, time.Now()); err != nil {
			w.Logger.WithError(err).Error("CatchUp.Run.pass failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce materializes due occurrences for every recurrence active as of now
// and returns how many transactions were created.
func (w *CatchUp) RunOnce(ctx context.Context, now time.Time) (int, error) {
	created := 0

	err := logging.OperationWrapper("RecurrenceCatchUp", w.Logger, func(logData *logging.LogData) error {
		active, err := w.Recurrence.ListActiveAsOf(ctx, now)
		if err != nil {
			return err
		}
		logData.AddData("activeRecurrences", len(active))

		for _, rec := range active {
			generated, err := w.Recurrence.MaterializeDue(ctx, rec.ID, now)
			if err != nil {
				if errors.Is(err, ledger.ErrInvariantViolation) {
					w.Logger.WithError(err).Errorf("CatchUp.RunOnce.inconsistent recurrence %s", rec.ID)
					w.Logger.Debug(spew.Sdump(rec))
					continue
				}
				return err
			}
			created += len(generated)
		}

		logData.AddData("createdTransactions", created)
		return nil
	})

	return created, err
}
