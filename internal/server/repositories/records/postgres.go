package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/dbx"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
)

const recordColumns = `id, user_id, type, amount, description, category, date, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query :=
		`INSERT INTO income_expenses (user_id, type, amount, description, category, date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, amount, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerID, string(rec.Type), rec.Amount, rec.Description, rec.Category, rec.Date,
	).Scan(&rec.ID, &rec.Amount, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Record, error) {
	query :=
		`SELECT ` + recordColumns + `
		 FROM income_expenses
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, ownerID string) (*models.Record, error) {
	query :=
		`SELECT ` + recordColumns + `
		 FROM income_expenses
		 WHERE id = $1 AND user_id = $2`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query :=
		`UPDATE income_expenses
		 SET type = $1, amount = $2, description = $3, category = $4, date = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7
		 RETURNING amount, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		string(rec.Type), rec.Amount, rec.Description, rec.Category, rec.Date, rec.ID, rec.OwnerID,
	).Scan(&rec.Amount, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM income_expenses WHERE id = $1 AND user_id = $2`, id, ownerID)
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

func (r *PostgresRepository) Summary(ctx context.Context, ownerID string) (models.Summary, error) {
	query :=
		`SELECT
		     COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)::float8,
		     COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)::float8
		 FROM income_expenses
		 WHERE user_id = $1`

	var s models.Summary
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&s.Income, &s.Expense); err != nil {
		return models.Summary{}, fmt.Errorf("db error: %w", err)
	}
	s.Balance = s.Income - s.Expense
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var (
		rec models.Record
		typ string
	)
	err := row.Scan(&rec.ID, &rec.OwnerID, &typ, &rec.Amount, &rec.Description, &rec.Category,
		&rec.Date, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Type = models.RecordType(typ)
	return &rec, nil
}
