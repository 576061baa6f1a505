package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

type recurrenceStore struct {
	q querier
}

const recurrenceColumns = "id, account_id, start_date, end_date, frequency, amount, direction, description, tag_ids, created_at"

func (s *recurrenceStore) Insert(ctx context.Context, rec ledger.Recurrence) error {
	var endDate any
	if rec.EndDate != nil {
		endDate = *rec.EndDate
	}
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO recurrences (id, account_id, start_date, end_date, frequency, amount, direction, description, tag_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.AccountID, rec.StartDate, endDate, rec.Frequency.String(),
		rec.Template.Amount, rec.Template.Direction.String(), rec.Template.Description,
		tagIDsToArray(rec.Template.TagIDs), rec.CreatedAt,
	)
	return err
}

func (s *recurrenceStore) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Recurrence, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+recurrenceColumns+` FROM recurrences WHERE id = $1`, id)

	rec, err := scanRecurrence(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: recurrence %s", ledger.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recurrenceStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Recurrence, error) {
	return s.list(ctx,
		`SELECT `+recurrenceColumns+` FROM recurrences
		 WHERE account_id = $1 ORDER BY created_at, id`, accountID)
}

func (s *recurrenceStore) ListActiveAsOf(ctx context.Context, asOf time.Time) ([]ledger.Recurrence, error) {
	return s.list(ctx,
		`SELECT `+recurrenceColumns+` FROM recurrences
		 WHERE start_date <= $1 AND (end_date IS NULL OR end_date >= $1)
		 ORDER BY created_at, id`, asOf)
}

func (s *recurrenceStore) list(ctx context.Context, query string, arg any) ([]ledger.Recurrence, error) {
	rows, err := s.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Recurrence
	for rows.Next() {
		rec, err := scanRecurrence(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *recurrenceStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM recurrences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "recurrence", id)
}

func scanRecurrence(scan func(...any) error) (*ledger.Recurrence, error) {
	var (
		rec       ledger.Recurrence
		endDate   sql.NullTime
		frequency string
		direction string
		tagIDs    pq.StringArray
	)
	err := scan(&rec.ID, &rec.AccountID, &rec.StartDate, &endDate, &frequency,
		&rec.Template.Amount, &direction, &rec.Template.Description, &tagIDs, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		t := endDate.Time
		rec.EndDate = &t
	}
	if rec.Frequency, err = ledger.ParseFrequency(frequency); err != nil {
		return nil, err
	}
	if rec.Template.Direction, err = ledger.ParseDirection(direction); err != nil {
		return nil, err
	}
	if rec.Template.TagIDs, err = tagIDsFromArray(tagIDs); err != nil {
		return nil, err
	}
	return &rec, nil
}
