package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Direction states whether a transaction increases or decreases an account's
// balance. Amounts are always non-negative magnitudes; the sign lives here.
type Direction int8

const (
	DirectionIncome Direction = iota
	DirectionExpense
)

func (d Direction) String() string {
	switch d {
	case DirectionIncome:
		return "INCOME"
	case DirectionExpense:
		return "EXPENSE"
	}
	return "UNKNOWN"
}

// ParseDirection converts a wire/storage label back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(s) {
	case "INCOME":
		return DirectionIncome, nil
	case "EXPENSE":
		return DirectionExpense, nil
	}
	return 0, fmt.Errorf("%w: unrecognized direction %q", ErrInvalidArgument, s)
}

// Frequency is the step unit of a recurrence.
type Frequency int8

const (
	FrequencyDaily Frequency = iota
	FrequencyWeekly
	FrequencyMonthly
	FrequencyYearly
)

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "DAILY"
	case FrequencyWeekly:
		return "WEEKLY"
	case FrequencyMonthly:
		return "MONTHLY"
	case FrequencyYearly:
		return "YEARLY"
	}
	return "UNKNOWN"
}

// ParseFrequency converts a wire/storage label back to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(s) {
	case "DAILY":
		return FrequencyDaily, nil
	case "WEEKLY":
		return FrequencyWeekly, nil
	case "MONTHLY":
		return FrequencyMonthly, nil
	case "YEARLY":
		return FrequencyYearly, nil
	}
	return 0, fmt.Errorf("%w: unrecognized frequency %q", ErrInvalidArgument, s)
}

// Account represents an account record. Every transaction an account owns is
// denominated in the account's currency.
type Account struct {
	ID          uuid.UUID
	Name        string
	Currency    string // ISO 4217 alphabetic code
	Description string
	CreatedAt   time.Time
}

// ValidCurrencyCode reports whether code has the ISO 4217 alphabetic shape.
// Full code-table validation is left to the surrounding system.
func ValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Tag is a hierarchical label attachable to transactions. ParentID forms a
// forest; the ancestor chain of any tag terminates at a root.
type Tag struct {
	ID          uuid.UUID
	Name        string
	Description string
	ParentID    *uuid.UUID
	CreatedAt   time.Time
}

// Transaction represents a ledger entry. RecurrenceID is set only on entries
// materialized from a recurrence.
type Transaction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	ValueDate    time.Time
	Amount       decimal.Decimal // non-negative magnitude
	Direction    Direction
	Description  string
	TagIDs       []uuid.UUID
	RecurrenceID *uuid.UUID
	CreatedAt    time.Time
}

// SignedAmount is the amount with the direction's sign applied.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// HasTag reports whether the transaction carries the given tag id.
func (t Transaction) HasTag(tagID uuid.UUID) bool {
	for _, id := range t.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// TransactionTemplate carries the fields applied to every transaction a
// recurrence generates. It is captured at recurrence-creation time and stored
// with the recurrence so later catch-up runs materialize identical entries.
type TransactionTemplate struct {
	Amount      decimal.Decimal
	Direction   Direction
	Description string
	TagIDs      []uuid.UUID
}

// Recurrence is a template describing a repeating transaction pattern. It is
// immutable after creation except for deletion, which cascades to every
// transaction carrying its id.
type Recurrence struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	StartDate time.Time
	EndDate   *time.Time // if set, EndDate >= StartDate
	Frequency Frequency
	Template  TransactionTemplate
	CreatedAt time.Time
}
