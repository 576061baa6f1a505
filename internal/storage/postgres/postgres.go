// Package postgres implements storage.Storage on PostgreSQL with lib/pq.
// Schema lives under migrations/ and is applied by scripts/db_migrations.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/riccardocatervi/JBudget-sub001/internal/config"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// querier is satisfied by both *sql.DB and *sql.Tx so every store works
// autocommit or inside a unit of work.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Storage struct {
	DB *sql.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Storage{DB: db}, nil
}

func (s *Storage) Read() *storage.Store {
	return storeSet(s.DB)
}

func (s *Storage) Write(ctx context.Context) (*storage.Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storage.Writer{Store: *storeSet(tx), Tx: tx}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func storeSet(q querier) *storage.Store {
	return &storage.Store{
		Accounts:     &accountStore{q: q},
		Transactions: &transactionStore{q: q},
		Tags:         &tagStore{q: q},
		Recurrences:  &recurrenceStore{q: q},
	}
}
