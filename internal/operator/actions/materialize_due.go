package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/recurrence"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// MaterializeDue brings a recurrence's generated transactions up to date with
// its expansion as of Now. Occurrences already materialized are skipped, so
// the action is idempotent per occurrence date.
type MaterializeDue struct {
	RecurrenceID uuid.UUID
	Now          time.Time

	// Generated holds the newly created transactions, valid once committed.
	Generated []ledger.Transaction
}

func (a *MaterializeDue) Perform(ctx context.Context, writer *storage.Writer) error {
	rec, err := writer.Recurrences.FindByID(ctx, a.RecurrenceID)
	if err != nil {
		return err
	}

	existing, err := writer.Transactions.ListByRecurrence(ctx, rec.ID)
	if err != nil {
		return err
	}

	// Validate existing rows against the schedule up to the latest of Now and
	// the last materialized occurrence, so rows legitimately materialized by
	// an earlier pass with a later clock are not flagged.
	checkBound := a.Now
	for _, tx := range existing {
		if tx.ValueDate.After(checkBound) {
			checkBound = tx.ValueDate
		}
	}
	scheduleSet := make(map[string]bool)
	for _, occ := range recurrence.Expand(rec.StartDate, rec.EndDate, rec.Frequency, checkBound) {
		scheduleSet[dateKey(occ)] = true
	}

	materialized := make(map[string]bool, len(existing))
	for _, tx := range existing {
		key := dateKey(tx.ValueDate)
		if !scheduleSet[key] {
			return fmt.Errorf("%w: transaction %s dated %s matches no occurrence of recurrence %s",
				ledger.ErrInvariantViolation, tx.ID, tx.ValueDate.Format(time.RFC3339), rec.ID)
		}
		materialized[key] = true
	}

	var missing []time.Time
	for _, occ := range recurrence.Expand(rec.StartDate, rec.EndDate, rec.Frequency, a.Now) {
		if !materialized[dateKey(occ)] {
			missing = append(missing, occ)
		}
	}

	generated, err := materialize(ctx, writer, *rec, missing, a.Now)
	if err != nil {
		return err
	}

	a.Generated = generated
	return nil
}

func dateKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
