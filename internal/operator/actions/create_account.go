package actions

import (
	"context"
	"time"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

type CreateAccount struct {
	Name        string
	Currency    string
	Description string
	Now         time.Time

	// Result is the persisted account, valid once the action has committed.
	Result ledger.Account
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	account := ledger.Account{
		ID:          newID(),
		Name:        a.Name,
		Currency:    a.Currency,
		Description: a.Description,
		CreatedAt:   a.Now,
	}
	if err := writer.Accounts.Insert(ctx, account); err != nil {
		return err
	}

	a.Result = account
	return nil
}
