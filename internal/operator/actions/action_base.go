package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// Action is one mutating unit of work. Perform runs against a scoped writer;
// the operator commits on nil error and rolls back otherwise.
type Action interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}
