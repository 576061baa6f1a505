// Package storage defines the persistence contracts the ledger core consumes.
// Implementations live in the postgres and memory subpackages.
package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

// AccountStore persists accounts. FindByID returns ledger.ErrNotFound for
// unknown ids.
type AccountStore interface {
	Insert(ctx context.Context, account ledger.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error)
	List(ctx context.Context) ([]ledger.Account, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// TransactionStore persists transactions.
type TransactionStore interface {
	Insert(ctx context.Context, tx ledger.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Transaction, error)
	ListByRecurrence(ctx context.Context, recurrenceID uuid.UUID) ([]ledger.Transaction, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// DeleteByRecurrence removes every transaction carrying the recurrence id
	// and returns the number removed.
	DeleteByRecurrence(ctx context.Context, recurrenceID uuid.UUID) (int64, error)
}

// TagStore persists tags.
type TagStore interface {
	Insert(ctx context.Context, tag ledger.Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Tag, error)
	List(ctx context.Context) ([]ledger.Tag, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// RecurrenceStore persists recurrences.
type RecurrenceStore interface {
	Insert(ctx context.Context, rec ledger.Recurrence) error
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Recurrence, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Recurrence, error)
	// ListActiveAsOf returns recurrences whose start date is not after asOf and
	// whose end date, if any, is not before asOf.
	ListActiveAsOf(ctx context.Context, asOf time.Time) ([]ledger.Recurrence, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Store bundles the per-entity stores reachable in one scope, either
// autocommit or inside a writer.
type Store struct {
	Accounts     AccountStore
	Transactions TransactionStore
	Tags         TagStore
	Recurrences  RecurrenceStore
}

// Tx is the commit/rollback handle backing a Writer.
type Tx interface {
	Commit() error
	Rollback() error
}

// Writer is a Store scoped to one atomic unit of work. Everything performed
// through it applies on Commit or is discarded on Rollback.
type Writer struct {
	Store
	Tx Tx
}

func (w *Writer) Commit() error {
	return w.Tx.Commit()
}

func (w *Writer) Rollback() error {
	return w.Tx.Rollback()
}

// Storage is the full persistence surface: autocommit reads plus scoped
// writers.
type Storage interface {
	// Read returns the autocommit store set.
	Read() *Store
	// Write opens a new scoped unit of work.
	Write(ctx context.Context) (*Writer, error)
}
