package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/dbx"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(ctx, query, note.OwnerID, note.Title, note.Content).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE id = $1 AND user_id = $2`

	var n models.Note
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`UPDATE notes
		 SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, note.ID, note.OwnerID).Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
