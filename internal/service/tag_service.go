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

// TagService handles the tag forest. Attachments that would form a cycle are
// rejected at creation time.
type TagService struct {
	storage  storage.Storage
	operator *operator.OperatorDelegator
	now      func() time.Time
}

// NewTagService creates a new TagService.
func NewTagService(store storage.Storage, op *operator.OperatorDelegator) *TagService {
	return &TagService{storage: store, operator: op, now: time.Now}
}

// Create validates and persists a new tag, optionally attached to a parent.
func (s *TagService) Create(ctx context.Context, name, description string, parentID *uuid.UUID) (*ledger.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", ledger.ErrInvalidArgument)
	}

	action := &actions.CreateTag{
		Name:        name,
		Description: description,
		ParentID:    parentID,
		Now:         s.now(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &action.Result, nil
}

// Get returns a tag by id.
func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*ledger.Tag, error) {
	return s.storage.Read().Tags.FindByID(ctx, id)
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]ledger.Tag, error) {
	return s.storage.Read().Tags.List(ctx)
}
