package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

type transactionStore struct {
	q querier
}

const transactionColumns = "id, account_id, value_date, amount, direction, description, tag_ids, recurrence_id, created_at"

func (s *transactionStore) Insert(ctx context.Context, tx ledger.Transaction) error {
	var recurrenceID any
	if tx.RecurrenceID != nil {
		recurrenceID = *tx.RecurrenceID
	}
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, value_date, amount, direction, description, tag_ids, recurrence_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tx.ID, tx.AccountID, tx.ValueDate, tx.Amount, tx.Direction.String(),
		tx.Description, tagIDsToArray(tx.TagIDs), recurrenceID, tx.CreatedAt,
	)
	return err
}

func (s *transactionStore) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	tx, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", ledger.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Transaction, error) {
	return s.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE account_id = $1 ORDER BY created_at, id`, accountID)
}

func (s *transactionStore) ListByRecurrence(ctx context.Context, recurrenceID uuid.UUID) ([]ledger.Transaction, error) {
	return s.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE recurrence_id = $1 ORDER BY created_at, id`, recurrenceID)
}

func (s *transactionStore) list(ctx context.Context, query string, arg any) ([]ledger.Transaction, error) {
	rows, err := s.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

func (s *transactionStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "transaction", id)
}

func (s *transactionStore) DeleteByRecurrence(ctx context.Context, recurrenceID uuid.UUID) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM transactions WHERE recurrence_id = $1`, recurrenceID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanTransaction(scan func(...any) error) (*ledger.Transaction, error) {
	var (
		tx           ledger.Transaction
		direction    string
		tagIDs       pq.StringArray
		recurrenceID uuid.NullUUID
	)
	err := scan(&tx.ID, &tx.AccountID, &tx.ValueDate, &tx.Amount, &direction,
		&tx.Description, &tagIDs, &recurrenceID, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}

	if tx.Direction, err = ledger.ParseDirection(direction); err != nil {
		return nil, err
	}
	if tx.TagIDs, err = tagIDsFromArray(tagIDs); err != nil {
		return nil, err
	}
	if recurrenceID.Valid {
		id := recurrenceID.UUID
		tx.RecurrenceID = &id
	}
	return &tx, nil
}

// Tag ids travel as text[] to keep lib/pq array handling on well-trodden
// ground.
func tagIDsToArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func tagIDsFromArray(arr pq.StringArray) ([]uuid.UUID, error) {
	if len(arr) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, len(arr))
	for i, s := range arr {
		id, err := uuid.FromString(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
