package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/operator"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage/memory"
)

// testEnv wires the services against the in-memory storage with a single
// operator, the same shape main builds in production.
type testEnv struct {
	store *memory.Storage
	svc   *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStorage()
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	return &testEnv{
		store: store,
		svc:   NewService(store, delegator),
	}
}

// freeze pins every service clock to the given instant.
func (e *testEnv) freeze(now time.Time) {
	clock := func() time.Time { return now }
	e.svc.Account.now = clock
	e.svc.Tag.now = clock
	e.svc.Transaction.now = clock
	e.svc.Recurrence.now = clock
}

func (e *testEnv) mustCreateAccount(t *testing.T) ledger.Account {
	t.Helper()
	account, err := e.svc.Account.Create(context.Background(), "Checking", "EUR", "")
	require.NoError(t, err)
	return *account
}

// seedTransaction writes a transaction straight into committed storage so
// tests control value dates and creation times exactly.
func (e *testEnv) seedTransaction(t *testing.T, tx ledger.Transaction) ledger.Transaction {
	t.Helper()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.Must(uuid.NewV4())
	}
	require.NoError(t, e.store.Read().Transactions.Insert(context.Background(), tx))
	return tx
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
