package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

type accountStore struct {
	q querier
}

const accountColumns = "id, name, currency, description, created_at"

func (s *accountStore) Insert(ctx context.Context, account ledger.Account) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO accounts (id, name, currency, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.Name, account.Currency, account.Description, account.CreatedAt,
	)
	return err
}

func (s *accountStore) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	var account ledger.Account
	err := row.Scan(&account.ID, &account.Name, &account.Currency, &account.Description, &account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", ledger.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *accountStore) List(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Account
	for rows.Next() {
		var account ledger.Account
		if err := rows.Scan(&account.ID, &account.Name, &account.Currency, &account.Description, &account.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, account)
	}
	return out, rows.Err()
}

func (s *accountStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "account", id)
}

// requireAffected maps a zero-row mutation to ledger.ErrNotFound.
func requireAffected(res sql.Result, kind string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ledger.ErrNotFound, kind, id)
	}
	return nil
}
