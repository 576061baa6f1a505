package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

type tagStore struct {
	q querier
}

const tagColumns = "id, name, description, parent_id, created_at"

func (s *tagStore) Insert(ctx context.Context, tag ledger.Tag) error {
	var parentID any
	if tag.ParentID != nil {
		parentID = *tag.ParentID
	}
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO tags (id, name, description, parent_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tag.ID, tag.Name, tag.Description, parentID, tag.CreatedAt,
	)
	return err
}

func (s *tagStore) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Tag, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)

	tag, err := scanTag(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tag %s", ledger.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagStore) List(ctx context.Context) ([]ledger.Tag, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Tag
	for rows.Next() {
		tag, err := scanTag(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *tag)
	}
	return out, rows.Err()
}

func (s *tagStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "tag", id)
}

func scanTag(scan func(...any) error) (*ledger.Tag, error) {
	var (
		tag      ledger.Tag
		parentID uuid.NullUUID
	)
	if err := scan(&tag.ID, &tag.Name, &tag.Description, &parentID, &tag.CreatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		id := parentID.UUID
		tag.ParentID = &id
	}
	return &tag, nil
}
