package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/riccardocatervi/JBudget-sub001/internal/operator/actions"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// Operator is the worker that drains the action queue. Each action runs inside
// its own scoped unit of work: Perform either commits as a whole or the writer
// is rolled back and the ledger is untouched.
type Operator struct {
	storage storage.Storage
	queue   chan task
}

func NewOperator(s storage.Storage, queue chan task) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run processes queued tasks until the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- o.processTask(item)
	}
}

func (o *Operator) processTask(item task) taskResponse {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return taskResponse{err: err}
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("Operator.processTask.rollback")
		}
		return taskResponse{err: err}
	}

	if err = writer.Commit(); err != nil {
		return taskResponse{err: err}
	}
	return taskResponse{}
}

type task struct {
	ctx      context.Context
	action   actions.Action
	response chan taskResponse
}

type taskResponse struct {
	err error
}
