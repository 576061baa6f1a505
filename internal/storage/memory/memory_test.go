package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

func newAccount(name string) ledger.Account {
	return ledger.Account{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Currency: "EUR",
	}
}

func TestWrite_CommitPublishesChanges(t *testing.T) {
	store := NewStorage()
	account := newAccount("Checking")

	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.Insert(context.Background(), account))

	// The working set sees its own uncommitted inserts.
	got, err := writer.Accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, *got)

	require.NoError(t, writer.Commit())

	got, err = store.Read().Accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, *got)
}

func TestWrite_RollbackDiscardsChanges(t *testing.T) {
	store := NewStorage()
	account := newAccount("Checking")

	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.Insert(context.Background(), account))
	require.NoError(t, writer.Rollback())

	_, err = store.Read().Accounts.FindByID(context.Background(), account.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestWrite_RollbackAfterPartialBatchLeavesNothing(t *testing.T) {
	store := NewStorage()
	recurrenceID := uuid.Must(uuid.NewV4())

	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		tx := ledger.Transaction{ID: uuid.Must(uuid.NewV4()), RecurrenceID: &recurrenceID}
		require.NoError(t, writer.Transactions.Insert(context.Background(), tx))
	}
	require.NoError(t, writer.Rollback())

	rows, err := store.Read().Transactions.ListByRecurrence(context.Background(), recurrenceID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWrite_CancelledContext(t *testing.T) {
	store := NewStorage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Write(ctx)
	assert.Error(t, err)
}

func TestDeleteByRecurrence_CountsRemovedRows(t *testing.T) {
	store := NewStorage()
	target := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())

	read := store.Read()
	for i := 0; i < 3; i++ {
		require.NoError(t, read.Transactions.Insert(context.Background(), ledger.Transaction{ID: uuid.Must(uuid.NewV4()), RecurrenceID: &target}))
	}
	require.NoError(t, read.Transactions.Insert(context.Background(), ledger.Transaction{ID: uuid.Must(uuid.NewV4()), RecurrenceID: &other}))
	require.NoError(t, read.Transactions.Insert(context.Background(), ledger.Transaction{ID: uuid.Must(uuid.NewV4())}))

	removed, err := read.Transactions.DeleteByRecurrence(context.Background(), target)

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	survivors, err := read.Transactions.ListByRecurrence(context.Background(), other)
	require.NoError(t, err)
	assert.Len(t, survivors, 1)
}

func TestDeleteByID_Unknown(t *testing.T) {
	store := NewStorage()

	err := store.Read().Transactions.DeleteByID(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestFindByID_Unknown(t *testing.T) {
	store := NewStorage()
	read := store.Read()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	_, err := read.Accounts.FindByID(ctx, id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = read.Transactions.FindByID(ctx, id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = read.Tags.FindByID(ctx, id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = read.Recurrences.FindByID(ctx, id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestListActiveAsOf_Bounds(t *testing.T) {
	store := NewStorage()
	read := store.Read()
	ctx := context.Background()

	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	openEnded := ledger.Recurrence{
		ID:        uuid.Must(uuid.NewV4()),
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	bounded := ledger.Recurrence{
		ID:        uuid.Must(uuid.NewV4()),
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		CreatedAt: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
	future := ledger.Recurrence{
		ID:        uuid.Must(uuid.NewV4()),
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
	}
	for _, rec := range []ledger.Recurrence{openEnded, bounded, future} {
		require.NoError(t, read.Recurrences.Insert(ctx, rec))
	}

	active, err := read.Recurrences.ListActiveAsOf(ctx, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, openEnded.ID, active[0].ID)
	assert.Equal(t, bounded.ID, active[1].ID)

	// On the end date itself the recurrence is still active, one day past it
	// is not.
	active, err = read.Recurrences.ListActiveAsOf(ctx, end)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	active, err = read.Recurrences.ListActiveAsOf(ctx, end.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, openEnded.ID, active[0].ID)
}

func TestList_OrderedByCreation(t *testing.T) {
	store := NewStorage()
	read := store.Read()
	ctx := context.Background()

	for i := 3; i >= 1; i-- {
		account := newAccount("a")
		account.CreatedAt = time.Date(2024, time.January, i, 0, 0, 0, 0, time.UTC)
		require.NoError(t, read.Accounts.Insert(ctx, account))
	}

	got, err := read.Accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, !got[i].CreatedAt.Before(got[i-1].CreatedAt))
	}
}
