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

// AccountService handles account business logic.
type AccountService struct {
	storage  storage.Storage
	operator *operator.OperatorDelegator
	now      func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(store storage.Storage, op *operator.OperatorDelegator) *AccountService {
	return &AccountService{storage: store, operator: op, now: time.Now}
}

// Create validates and persists a new account.
func (s *AccountService) Create(ctx context.Context, name, currency, description string) (*ledger.Account, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", ledger.ErrInvalidArgument)
	}
	if !ledger.ValidCurrencyCode(currency) {
		return nil, fmt.Errorf("%w: unrecognized currency %q", ledger.ErrInvalidArgument, currency)
	}

	action := &actions.CreateAccount{
		Name:        name,
		Currency:    currency,
		Description: description,
		Now:         s.now(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &action.Result, nil
}

// Get returns an account by id.
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	return s.storage.Read().Accounts.FindByID(ctx, id)
}

// List returns all accounts.
func (s *AccountService) List(ctx context.Context) ([]ledger.Account, error) {
	return s.storage.Read().Accounts.List(ctx)
}
