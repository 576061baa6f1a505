package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

func TestCreateTag_RootAndChild(t *testing.T) {
	env := newTestEnv(t)
	env.freeze(day(2024, time.January, 1))

	root, err := env.svc.Tag.Create(context.Background(), "Household", "everything home", nil)
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, day(2024, time.January, 1), root.CreatedAt)

	child, err := env.svc.Tag.Create(context.Background(), "Utilities", "", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	got, err := env.svc.Tag.Get(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Utilities", got.Name)
}

func TestCreateTag_EmptyNameRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Tag.Create(context.Background(), "", "", nil)
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestCreateTag_UnknownParent(t *testing.T) {
	env := newTestEnv(t)

	missing := uuid.Must(uuid.NewV4())
	_, err := env.svc.Tag.Create(context.Background(), "Orphan", "", &missing)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

// A corrupt store with two tags pointing at each other must not send the
// ancestor walk into an endless loop.
func TestCreateTag_RejectsAncestorCycle(t *testing.T) {
	env := newTestEnv(t)

	idA := uuid.Must(uuid.NewV4())
	idB := uuid.Must(uuid.NewV4())
	store := env.store.Read()
	require.NoError(t, store.Tags.Insert(context.Background(), ledger.Tag{ID: idA, Name: "A", ParentID: &idB}))
	require.NoError(t, store.Tags.Insert(context.Background(), ledger.Tag{ID: idB, Name: "B", ParentID: &idA}))

	_, err := env.svc.Tag.Create(context.Background(), "C", "", &idA)
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestListTags_SortedByCreation(t *testing.T) {
	env := newTestEnv(t)
	env.freeze(day(2024, time.January, 1))
	first, err := env.svc.Tag.Create(context.Background(), "First", "", nil)
	require.NoError(t, err)
	env.freeze(day(2024, time.January, 2))
	second, err := env.svc.Tag.Create(context.Background(), "Second", "", nil)
	require.NoError(t, err)

	got, err := env.svc.Tag.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestGetTag_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Tag.Get(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
