package operator

import (
	"context"
	"sync"

	"github.com/riccardocatervi/JBudget-sub001/internal/operator/actions"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// OperatorDelegator owns the queue, starts and stops Operators, and enqueues
// actions on behalf of the services.
type OperatorDelegator struct {
	storage    storage.Storage
	queue      chan task
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewOperatorDelegator(s storage.Storage, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		queue:      make(chan task, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process enqueues the action and blocks until it has committed or failed.
// Results an action produces are safe to read once Process returns.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.Action) error {
	respCh := make(chan taskResponse, 1)
	item := task{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.queue <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
