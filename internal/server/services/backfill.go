package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/finplanner/internal/dbx"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
)

// Backfill rewrites password_hash values that are not bcrypt hashes. Such
// rows hold the plaintext password from before hashing was introduced; the
// value is hashed in place so the user can keep logging in with it.
type Backfill struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	logger      logging.Logger
}

func NewBackfill(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, logger logging.Logger) *Backfill {
	return &Backfill{db: db, repomanager: m, hasher: hasher, logger: logger.With("module", "backfill")}
}

// Run rehashes every legacy row in one transaction and returns how many
// rows changed. Values bcrypt cannot take (over 72 bytes) are skipped.
func (b *Backfill) Run(ctx context.Context) (int, error) {
	var updated int

	err := dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := b.repomanager.Users(tx)

		hashes, err := repo.ListPasswordHashes(ctx)
		if err != nil {
			return err
		}

		for _, h := range hashes {
			if auth.IsHash(h.Hash) {
				continue
			}
			if len(h.Hash) > auth.MaxPasswordBytes {
				b.logger.Warn(ctx, "legacy password too long to hash, skipped", "user_id", h.UserID)
				continue
			}

			hash, err := b.hasher.Hash(h.Hash)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", h.UserID, err)
			}
			if err := repo.UpdatePassword(ctx, h.UserID, hash); err != nil {
				return fmt.Errorf("update password for %s: %w", h.UserID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	b.logger.Info(ctx, "password backfill finished", "updated", updated)
	return updated, nil
}
