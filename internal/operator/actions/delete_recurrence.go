package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// DeleteRecurrence removes a recurrence and every transaction carrying its id
// in one unit of work. An unknown id fails with ledger.ErrNotFound before any
// deletion happens.
type DeleteRecurrence struct {
	RecurrenceID uuid.UUID

	// Removed counts the cascaded transactions, valid once committed.
	Removed int64
}

func (a *DeleteRecurrence) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Recurrences.FindByID(ctx, a.RecurrenceID); err != nil {
		return err
	}

	removed, err := writer.Transactions.DeleteByRecurrence(ctx, a.RecurrenceID)
	if err != nil {
		return err
	}
	if err := writer.Recurrences.DeleteByID(ctx, a.RecurrenceID); err != nil {
		return err
	}

	a.Removed = removed
	return nil
}
