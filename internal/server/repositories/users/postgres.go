package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/dbx"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

var constraintFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

const userColumns = `id, username, email, password_hash, reset_token_hash, reset_token_expires_at,
		        currency, currency_symbol, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password_hash, currency, currency_symbol)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.PasswordHash, user.Settings.Currency, user.Settings.CurrencySymbol,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if field, ok := duplicateField(err); ok {
			return nil, &common.DuplicateError{Field: field}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func duplicateField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return "", false
	}
	if f, ok := constraintFields[pgErr.ConstraintName]; ok {
		return f, true
	}
	return "username", true
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		tokenHash sql.NullString
		expiresAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &tokenHash, &expiresAt,
		&u.Settings.Currency, &u.Settings.CurrencySymbol, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tokenHash.Valid {
		u.ResetTokenHash = &tokenHash.String
	}
	if expiresAt.Valid {
		u.ResetTokenExpiresAt = &expiresAt.Time
	}
	return &u, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE users
		 SET password_hash = $1, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
		 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) UpdateSettings(ctx context.Context, id string, settings models.Settings) (*models.User, error) {
	query :=
		`UPDATE users
		 SET currency = $1, currency_symbol = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING ` + userColumns

	return r.getOne(ctx, query, settings.Currency, settings.CurrencySymbol, id)
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	query :=
		`UPDATE users
		 SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = now()
		 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, tokenHash, expiresAt, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (string, error) {
	query :=
		`UPDATE users
		 SET password_hash = $1, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
		 WHERE reset_token_hash = $2 AND reset_token_expires_at > $3
		 RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query, passwordHash, tokenHash, now).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListPasswordHashes(ctx context.Context) ([]PasswordHash, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, password_hash FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []PasswordHash
	for rows.Next() {
		var p PasswordHash
		if err := rows.Scan(&p.UserID, &p.Hash); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
