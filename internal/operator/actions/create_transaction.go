package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

type CreateTransaction struct {
	AccountID   uuid.UUID
	ValueDate   time.Time
	Amount      decimal.Decimal
	Direction   ledger.Direction
	Description string
	TagIDs      []uuid.UUID
	Now         time.Time

	// Result is the persisted transaction, valid once the action has committed.
	Result ledger.Transaction
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Accounts.FindByID(ctx, a.AccountID); err != nil {
		return err
	}
	if err := checkTagsExist(ctx, writer, a.TagIDs); err != nil {
		return err
	}

	tx := ledger.Transaction{
		ID:          newID(),
		AccountID:   a.AccountID,
		ValueDate:   a.ValueDate,
		Amount:      a.Amount,
		Direction:   a.Direction,
		Description: a.Description,
		TagIDs:      a.TagIDs,
		CreatedAt:   a.Now,
	}
	if err := writer.Transactions.Insert(ctx, tx); err != nil {
		return err
	}

	a.Result = tx
	return nil
}

func checkTagsExist(ctx context.Context, writer *storage.Writer, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		if _, err := writer.Tags.FindByID(ctx, tagID); err != nil {
			return err
		}
	}
	return nil
}
