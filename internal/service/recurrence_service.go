package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/operator"
	"github.com/riccardocatervi/JBudget-sub001/internal/operator/actions"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

const (
	summaryNone = "Recurring transaction created successfully! No transactions were added since the start date is in the future."
	summaryOne  = "Recurring transaction created successfully! 1 transaction has been added."
	summaryMany = "Recurring transaction created successfully! %d transactions have been added."
)

// RecurrenceService owns the recurrence lifecycle: creation with immediate
// materialization up to now, and deletion with cascade of every generated
// transaction. Both run as one atomic unit through the operator.
type RecurrenceService struct {
	storage  storage.Storage
	operator *operator.OperatorDelegator
	now      func() time.Time
}

// NewRecurrenceService creates a new RecurrenceService.
func NewRecurrenceService(store storage.Storage, op *operator.OperatorDelegator) *RecurrenceService {
	return &RecurrenceService{storage: store, operator: op, now: time.Now}
}

// Create validates the input, persists the recurrence and materializes every
// occurrence that has already come due.
func (s *RecurrenceService) Create(ctx context.Context, input CreateRecurrenceInput) (*RecurrenceCreationResult, error) {
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ledger.ErrInvalidArgument)
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", ledger.ErrInvalidArgument)
	}
	if input.Template.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ledger.ErrInvalidArgument)
	}

	template := input.Template
	template.TagIDs = dedupeTagIDs(template.TagIDs)

	action := &actions.CreateRecurrence{
		AccountID: input.AccountID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Frequency: input.Frequency,
		Template:  template,
		Now:       s.now(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return &RecurrenceCreationResult{
		Recurrence: action.Result,
		Generated:  action.Generated,
		Count:      len(action.Generated),
		Summary:    creationSummary(len(action.Generated)),
	}, nil
}

// Delete removes the recurrence and cascades deletion of every transaction
// referencing it. An unknown id is ledger.ErrNotFound, not a no-op.
func (s *RecurrenceService) Delete(ctx context.Context, recurrenceID uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteRecurrence{RecurrenceID: recurrenceID})
}

// Get returns a recurrence by id.
func (s *RecurrenceService) Get(ctx context.Context, recurrenceID uuid.UUID) (*ledger.Recurrence, error) {
	return s.storage.Read().Recurrences.FindByID(ctx, recurrenceID)
}

// ListByAccount returns the account's recurrences.
func (s *RecurrenceService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Recurrence, error) {
	if _, err := s.storage.Read().Accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.storage.Read().Recurrences.ListByAccount(ctx, accountID)
}

// ListActiveAsOf returns every recurrence active at the given instant.
func (s *RecurrenceService) ListActiveAsOf(ctx context.Context, asOf time.Time) ([]ledger.Recurrence, error) {
	return s.storage.Read().Recurrences.ListActiveAsOf(ctx, asOf)
}

// MaterializeDue creates the transactions for occurrences that have come due
// since the recurrence was last materialized. Used by the catch-up worker.
func (s *RecurrenceService) MaterializeDue(ctx context.Context, recurrenceID uuid.UUID, asOf time.Time) ([]ledger.Transaction, error) {
	action := &actions.MaterializeDue{RecurrenceID: recurrenceID, Now: asOf}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Generated, nil
}

func creationSummary(count int) string {
	switch count {
	case 0:
		return summaryNone
	case 1:
		return summaryOne
	default:
		return fmt.Sprintf(summaryMany, count)
	}
}
