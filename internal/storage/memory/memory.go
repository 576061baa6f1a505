// Package memory provides a map-backed storage.Storage. Writers clone the
// working set and swap it in on commit, so a rolled-back unit of work leaves
// the committed state untouched. Used by tests and by dry runs.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

type data struct {
	accounts     map[uuid.UUID]ledger.Account
	transactions map[uuid.UUID]ledger.Transaction
	tags         map[uuid.UUID]ledger.Tag
	recurrences  map[uuid.UUID]ledger.Recurrence
}

func newData() *data {
	return &data{
		accounts:     make(map[uuid.UUID]ledger.Account),
		transactions: make(map[uuid.UUID]ledger.Transaction),
		tags:         make(map[uuid.UUID]ledger.Tag),
		recurrences:  make(map[uuid.UUID]ledger.Recurrence),
	}
}

// Entries are replaced wholesale, never mutated in place, so a shallow copy of
// each map is a sufficient snapshot.
func (d *data) clone() *data {
	c := newData()
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.transactions {
		c.transactions[k] = v
	}
	for k, v := range d.tags {
		c.tags[k] = v
	}
	for k, v := range d.recurrences {
		c.recurrences[k] = v
	}
	return c
}

// Storage implements storage.Storage in memory.
type Storage struct {
	mu   sync.RWMutex
	data *data
}

func NewStorage() *Storage {
	return &Storage{data: newData()}
}

// Read returns the autocommit store set over the committed state.
func (s *Storage) Read() *storage.Store {
	return s.storeSet(nil)
}

// Write locks the storage, hands out a writer over a cloned working set and
// releases the lock on Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	working := s.data.clone()
	return &storage.Writer{
		Store: *s.storeSet(working),
		Tx:    &memTx{s: s, working: working},
	}, nil
}

func (s *Storage) storeSet(working *data) *storage.Store {
	return &storage.Store{
		Accounts:     &accountStore{base: base{s: s, working: working}},
		Transactions: &transactionStore{base: base{s: s, working: working}},
		Tags:         &tagStore{base: base{s: s, working: working}},
		Recurrences:  &recurrenceStore{base: base{s: s, working: working}},
	}
}

type memTx struct {
	s       *Storage
	working *data
	done    bool
}

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.data = t.working
	t.s.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

// base routes reads and mutations either to the writer's working set or to the
// committed state under the storage lock.
type base struct {
	s       *Storage
	working *data
}

func (b base) view(fn func(*data)) {
	if b.working != nil {
		fn(b.working)
		return
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	fn(b.s.data)
}

func (b base) mutate(fn func(*data) error) error {
	if b.working != nil {
		return fn(b.working)
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.data)
}

// -- accounts --

type accountStore struct{ base }

func (a *accountStore) Insert(_ context.Context, account ledger.Account) error {
	return a.mutate(func(d *data) error {
		d.accounts[account.ID] = account
		return nil
	})
}

func (a *accountStore) FindByID(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	var found *ledger.Account
	a.view(func(d *data) {
		if acc, ok := d.accounts[id]; ok {
			found = &acc
		}
	})
	if found == nil {
		return nil, ledger.ErrNotFound
	}
	return found, nil
}

func (a *accountStore) List(_ context.Context) ([]ledger.Account, error) {
	var out []ledger.Account
	a.view(func(d *data) {
		for _, acc := range d.accounts {
			out = append(out, acc)
		}
	})
	sort.Slice(out, func(i, j int) bool { return creationOrder(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out, nil
}

func (a *accountStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	return a.mutate(func(d *data) error {
		if _, ok := d.accounts[id]; !ok {
			return ledger.ErrNotFound
		}
		delete(d.accounts, id)
		return nil
	})
}

// -- transactions --

type transactionStore struct{ base }

func (t *transactionStore) Insert(_ context.Context, tx ledger.Transaction) error {
	return t.mutate(func(d *data) error {
		d.transactions[tx.ID] = tx
		return nil
	})
}

func (t *transactionStore) FindByID(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var found *ledger.Transaction
	t.view(func(d *data) {
		if tx, ok := d.transactions[id]; ok {
			found = &tx
		}
	})
	if found == nil {
		return nil, ledger.ErrNotFound
	}
	return found, nil
}

func (t *transactionStore) ListByAccount(_ context.Context, accountID uuid.UUID) ([]ledger.Transaction, error) {
	return t.list(func(tx ledger.Transaction) bool { return tx.AccountID == accountID }), nil
}

func (t *transactionStore) ListByRecurrence(_ context.Context, recurrenceID uuid.UUID) ([]ledger.Transaction, error) {
	return t.list(func(tx ledger.Transaction) bool {
		return tx.RecurrenceID != nil && *tx.RecurrenceID == recurrenceID
	}), nil
}

func (t *transactionStore) list(match func(ledger.Transaction) bool) []ledger.Transaction {
	var out []ledger.Transaction
	t.view(func(d *data) {
		for _, tx := range d.transactions {
			if match(tx) {
				out = append(out, tx)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return creationOrder(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out
}

func (t *transactionStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	return t.mutate(func(d *data) error {
		if _, ok := d.transactions[id]; !ok {
			return ledger.ErrNotFound
		}
		delete(d.transactions, id)
		return nil
	})
}

func (t *transactionStore) DeleteByRecurrence(_ context.Context, recurrenceID uuid.UUID) (int64, error) {
	var removed int64
	err := t.mutate(func(d *data) error {
		for id, tx := range d.transactions {
			if tx.RecurrenceID != nil && *tx.RecurrenceID == recurrenceID {
				delete(d.transactions, id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// -- tags --

type tagStore struct{ base }

func (t *tagStore) Insert(_ context.Context, tag ledger.Tag) error {
	return t.mutate(func(d *data) error {
		d.tags[tag.ID] = tag
		return nil
	})
}

func (t *tagStore) FindByID(_ context.Context, id uuid.UUID) (*ledger.Tag, error) {
	var found *ledger.Tag
	t.view(func(d *data) {
		if tag, ok := d.tags[id]; ok {
			found = &tag
		}
	})
	if found == nil {
		return nil, ledger.ErrNotFound
	}
	return found, nil
}

func (t *tagStore) List(_ context.Context) ([]ledger.Tag, error) {
	var out []ledger.Tag
	t.view(func(d *data) {
		for _, tag := range d.tags {
			out = append(out, tag)
		}
	})
	sort.Slice(out, func(i, j int) bool { return creationOrder(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out, nil
}

func (t *tagStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	return t.mutate(func(d *data) error {
		if _, ok := d.tags[id]; !ok {
			return ledger.ErrNotFound
		}
		delete(d.tags, id)
		return nil
	})
}

// -- recurrences --

type recurrenceStore struct{ base }

func (r *recurrenceStore) Insert(_ context.Context, rec ledger.Recurrence) error {
	return r.mutate(func(d *data) error {
		d.recurrences[rec.ID] = rec
		return nil
	})
}

func (r *recurrenceStore) FindByID(_ context.Context, id uuid.UUID) (*ledger.Recurrence, error) {
	var found *ledger.Recurrence
	r.view(func(d *data) {
		if rec, ok := d.recurrences[id]; ok {
			found = &rec
		}
	})
	if found == nil {
		return nil, ledger.ErrNotFound
	}
	return found, nil
}

func (r *recurrenceStore) ListByAccount(_ context.Context, accountID uuid.UUID) ([]ledger.Recurrence, error) {
	return r.list(func(rec ledger.Recurrence) bool { return rec.AccountID == accountID }), nil
}

func (r *recurrenceStore) ListActiveAsOf(_ context.Context, asOf time.Time) ([]ledger.Recurrence, error) {
	return r.list(func(rec ledger.Recurrence) bool {
		if rec.StartDate.After(asOf) {
			return false
		}
		return rec.EndDate == nil || !rec.EndDate.Before(asOf)
	}), nil
}

func (r *recurrenceStore) list(match func(ledger.Recurrence) bool) []ledger.Recurrence {
	var out []ledger.Recurrence
	r.view(func(d *data) {
		for _, rec := range d.recurrences {
			if match(rec) {
				out = append(out, rec)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return creationOrder(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return out
}

func (r *recurrenceStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	return r.mutate(func(d *data) error {
		if _, ok := d.recurrences[id]; !ok {
			return ledger.ErrNotFound
		}
		delete(d.recurrences, id)
		return nil
	})
}

// creationOrder sorts by creation time, ties broken by id bytes, so list
// output is deterministic regardless of map iteration order.
func creationOrder(ti time.Time, idi uuid.UUID, tj time.Time, idj uuid.UUID) bool {
	if !ti.Equal(tj) {
		return ti.Before(tj)
	}
	return bytes.Compare(idi.Bytes(), idj.Bytes()) < 0
}
