package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

type CreateTag struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
	Now         time.Time

	// Result is the persisted tag, valid once the action has committed.
	Result ledger.Tag
}

func (a *CreateTag) Perform(ctx context.Context, writer *storage.Writer) error {
	id := newID()
	if a.ParentID != nil {
		if err := checkAncestorChain(ctx, writer, *a.ParentID, id); err != nil {
			return err
		}
	}

	tag := ledger.Tag{
		ID:          id,
		Name:        a.Name,
		Description: a.Description,
		ParentID:    a.ParentID,
		CreatedAt:   a.Now,
	}
	if err := writer.Tags.Insert(ctx, tag); err != nil {
		return err
	}

	a.Result = tag
	return nil
}

// checkAncestorChain walks from the proposed parent to the root and rejects
// the attachment if the chain would contain newID or revisit a tag. The
// hierarchy must stay a forest.
func checkAncestorChain(ctx context.Context, writer *storage.Writer, parentID, newID uuid.UUID) error {
	seen := map[uuid.UUID]bool{newID: true}
	current := &parentID
	for current != nil {
		if seen[*current] {
			return fmt.Errorf("%w: tag parent %s would create a cycle", ledger.ErrInvalidArgument, parentID)
		}
		seen[*current] = true

		parent, err := writer.Tags.FindByID(ctx, *current)
		if err != nil {
			return err
		}
		current = parent.ParentID
	}
	return nil
}
