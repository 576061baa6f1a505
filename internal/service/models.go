package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

// TransactionFilter is the search predicate. All clauses are optional and
// AND-combined; the zero value matches everything.
type TransactionFilter struct {
	Direction *ledger.Direction
	// TagIDs matches transactions carrying at least one of the listed tags.
	TagIDs []uuid.UUID
	// From/To bound the value date, inclusive on both ends.
	From *time.Time
	To   *time.Time
	// DescriptionContains matches case-insensitively on a substring.
	DescriptionContains string
	RecurrenceID        *uuid.UUID
}

// CreateTransactionInput is the input for a manual ledger entry.
type CreateTransactionInput struct {
	AccountID   uuid.UUID
	ValueDate   time.Time
	Amount      decimal.Decimal
	Direction   ledger.Direction
	Description string
	TagIDs      []uuid.UUID
}

// CreateRecurrenceInput is the input for recurrence creation. Template fields
// are applied to every generated transaction.
type CreateRecurrenceInput struct {
	AccountID uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
	Frequency ledger.Frequency
	Template  ledger.TransactionTemplate
}

// RecurrenceCreationResult is the composite returned by recurrence creation.
type RecurrenceCreationResult struct {
	Recurrence ledger.Recurrence
	Generated  []ledger.Transaction
	Count      int
	Summary    string
}

// Statistics is a read-only snapshot computed fresh on every call, never
// cached. Balance covers the account's lifetime; the other figures are bound
// to the requested range.
type Statistics struct {
	Balance            decimal.Decimal
	Income             decimal.Decimal
	Expenses           decimal.Decimal
	Net                decimal.Decimal
	SpendingByCategory map[string]decimal.Decimal
	Recent             []ledger.Transaction
	MatchedCount       int64
}
