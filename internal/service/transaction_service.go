package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/operator"
	"github.com/riccardocatervi/JBudget-sub001/internal/operator/actions"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// TransactionService creates manual ledger entries and answers filtered,
// paginated queries over an account's ledger.
type TransactionService struct {
	storage  storage.Storage
	operator *operator.OperatorDelegator
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store storage.Storage, op *operator.OperatorDelegator) *TransactionService {
	return &TransactionService{storage: store, operator: op, now: time.Now}
}

// Create persists a manual transaction through the operator, converging on the
// same shape materialization produces.
func (s *TransactionService) Create(ctx context.Context, input CreateTransactionInput) (*ledger.Transaction, error) {
	if input.ValueDate.IsZero() {
		return nil, fmt.Errorf("%w: value date is required", ledger.ErrInvalidArgument)
	}
	if input.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ledger.ErrInvalidArgument)
	}

	action := &actions.CreateTransaction{
		AccountID:   input.AccountID,
		ValueDate:   input.ValueDate,
		Amount:      input.Amount,
		Direction:   input.Direction,
		Description: input.Description,
		TagIDs:      dedupeTagIDs(input.TagIDs),
		Now:         s.now(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &action.Result, nil
}

// Search returns one zero-based page of the account's transactions matching
// the filter, value date descending. A page beyond the last is empty, not an
// error. Concatenating all pages reproduces the full filtered result exactly
// once for any page size.
func (s *TransactionService) Search(ctx context.Context, accountID uuid.UUID, filter TransactionFilter, page, size int) ([]ledger.Transaction, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: page size must be at least 1", ledger.ErrInvalidArgument)
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: page index must not be negative", ledger.ErrInvalidArgument)
	}

	matched, err := s.matching(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}

	offset := page * size
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// Count returns the number of transactions matching the filter.
func (s *TransactionService) Count(ctx context.Context, accountID uuid.UUID, filter TransactionFilter) (int64, error) {
	matched, err := s.matching(ctx, accountID, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// ListByTag returns the account's transactions carrying the tag.
func (s *TransactionService) ListByTag(ctx context.Context, accountID, tagID uuid.UUID, page, size int) ([]ledger.Transaction, error) {
	return s.Search(ctx, accountID, TransactionFilter{TagIDs: []uuid.UUID{tagID}}, page, size)
}

// ListByDirection returns the account's transactions with the given direction.
func (s *TransactionService) ListByDirection(ctx context.Context, accountID uuid.UUID, direction ledger.Direction, page, size int) ([]ledger.Transaction, error) {
	return s.Search(ctx, accountID, TransactionFilter{Direction: &direction}, page, size)
}

// ListByDateRange returns the account's transactions dated within [from, to].
func (s *TransactionService) ListByDateRange(ctx context.Context, accountID uuid.UUID, from, to time.Time, page, size int) ([]ledger.Transaction, error) {
	return s.Search(ctx, accountID, TransactionFilter{From: &from, To: &to}, page, size)
}

// ListByRecurrence returns the account's transactions a recurrence generated.
func (s *TransactionService) ListByRecurrence(ctx context.Context, accountID, recurrenceID uuid.UUID, page, size int) ([]ledger.Transaction, error) {
	return s.Search(ctx, accountID, TransactionFilter{RecurrenceID: &recurrenceID}, page, size)
}

// MostRecent returns the account's n most recent transactions by value date.
func (s *TransactionService) MostRecent(ctx context.Context, accountID uuid.UUID, n int) ([]ledger.Transaction, error) {
	return s.Search(ctx, accountID, TransactionFilter{}, 0, n)
}

// matching loads the account's ledger snapshot, applies the filter and sorts
// it into the deterministic query order.
func (s *TransactionService) matching(ctx context.Context, accountID uuid.UUID, filter TransactionFilter) ([]ledger.Transaction, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	read := s.storage.Read()
	if _, err := read.Accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	rows, err := read.Transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	matched := rows[:0:0]
	for _, tx := range rows {
		if filterMatches(filter, tx) {
			matched = append(matched, tx)
		}
	}
	sortQueryOrder(matched)
	return matched, nil
}

func validateFilter(filter TransactionFilter) error {
	if filter.From != nil && filter.To != nil {
		return validateDateRange(*filter.From, *filter.To)
	}
	return nil
}

func validateDateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: date range end precedes start", ledger.ErrInvalidArgument)
	}
	return nil
}

func filterMatches(filter TransactionFilter, tx ledger.Transaction) bool {
	if filter.Direction != nil && tx.Direction != *filter.Direction {
		return false
	}
	if filter.From != nil && tx.ValueDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && tx.ValueDate.After(*filter.To) {
		return false
	}
	if filter.RecurrenceID != nil {
		if tx.RecurrenceID == nil || *tx.RecurrenceID != *filter.RecurrenceID {
			return false
		}
	}
	if filter.DescriptionContains != "" &&
		!strings.Contains(strings.ToLower(tx.Description), strings.ToLower(filter.DescriptionContains)) {
		return false
	}
	if len(filter.TagIDs) > 0 {
		any := false
		for _, tagID := range filter.TagIDs {
			if tx.HasTag(tagID) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// sortQueryOrder orders value date descending with creation time and id as
// tie-breaks, so pagination is stable and exhaustive.
func sortQueryOrder(txs []ledger.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].ValueDate.Equal(txs[j].ValueDate) {
			return txs[i].ValueDate.After(txs[j].ValueDate)
		}
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return bytes.Compare(txs[i].ID.Bytes(), txs[j].ID.Bytes()) > 0
	})
}

func dedupeTagIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
