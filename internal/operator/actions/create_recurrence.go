package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/recurrence"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// CreateRecurrence persists a recurrence and materializes every occurrence up
// to Now in the same unit of work. Either the recurrence and all generated
// transactions commit together or nothing does.
type CreateRecurrence struct {
	AccountID uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
	Frequency ledger.Frequency
	Template  ledger.TransactionTemplate
	Now       time.Time

	// Result and Generated are valid once the action has committed.
	Result    ledger.Recurrence
	Generated []ledger.Transaction
}

func (a *CreateRecurrence) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Accounts.FindByID(ctx, a.AccountID); err != nil {
		return err
	}
	if err := checkTagsExist(ctx, writer, a.Template.TagIDs); err != nil {
		return err
	}

	rec := ledger.Recurrence{
		ID:        newID(),
		AccountID: a.AccountID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Frequency: a.Frequency,
		Template:  a.Template,
		CreatedAt: a.Now,
	}
	if err := writer.Recurrences.Insert(ctx, rec); err != nil {
		return err
	}

	occurrences := recurrence.Expand(rec.StartDate, rec.EndDate, rec.Frequency, a.Now)
	generated, err := materialize(ctx, writer, rec, occurrences, a.Now)
	if err != nil {
		return err
	}

	a.Result = rec
	a.Generated = generated
	return nil
}

// materialize persists one transaction per occurrence, stamped with the
// recurrence id and the recurrence's template, in occurrence order.
func materialize(ctx context.Context, writer *storage.Writer, rec ledger.Recurrence, occurrences []time.Time, now time.Time) ([]ledger.Transaction, error) {
	generated := make([]ledger.Transaction, 0, len(occurrences))
	for _, occ := range occurrences {
		recurrenceID := rec.ID
		tx := ledger.Transaction{
			ID:           newID(),
			AccountID:    rec.AccountID,
			ValueDate:    occ,
			Amount:       rec.Template.Amount,
			Direction:    rec.Template.Direction,
			Description:  rec.Template.Description,
			TagIDs:       append([]uuid.UUID(nil), rec.Template.TagIDs...),
			RecurrenceID: &recurrenceID,
			CreatedAt:    now,
		}
		if err := writer.Transactions.Insert(ctx, tx); err != nil {
			return nil, err
		}
		generated = append(generated, tx)
	}
	return generated, nil
}
