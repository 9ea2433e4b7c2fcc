// Package users stores accounts and their credential material.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/server/models"
)

// PasswordHash pairs a user id with its stored password_hash column.
type PasswordHash struct {
	UserID string
	Hash   string
}

// Repository is the credential store. Lookups return common.ErrNotFound
// when no row matches; Create returns *common.DuplicateError when the
// username or email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUserName(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword replaces the hash and drops any outstanding reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateSettings(ctx context.Context, id string, settings models.Settings) (*models.User, error)

	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	// ConsumeResetToken swaps in passwordHash for the user holding tokenHash,
	// provided the token expires after now, and clears the token in the same
	// write. It returns the user id, or common.ErrNotFound.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (string, error)

	ListPasswordHashes(ctx context.Context) ([]PasswordHash, error)
}
