package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/mail"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
)

// resetTokenBytes of randomness, hex-encoded for the link.
const resetTokenBytes = 32

type ResetConfig struct {
	Validity       time.Duration
	FrontendOrigin string
	PasswordMinLen int
}

// ResetService runs the forgot-password flow. Only the SHA-256 of a token
// is stored; the raw value exists in the email alone.
type ResetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	sender      mail.Sender
	cfg         ResetConfig
	now         func() time.Time
	logger      logging.Logger
}

func NewResetService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, sender mail.Sender,
	cfg ResetConfig, logger logging.Logger) *ResetService {
	return &ResetService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		sender:      sender,
		cfg:         cfg,
		now:         time.Now,
		logger:      logger.With("module", "reset"),
	}
}

// WithClock replaces the time source; used by tests.
func (s *ResetService) WithClock(now func() time.Time) *ResetService {
	s.now = now
	return s
}

// RequestReset issues a token for the account with this email and mails it.
// An unknown email is not an error. Delivery failures are logged only.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	token, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.Validity)
	if err := repo.SetResetToken(ctx, user.ID, common.SHA256Hex(token), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	msg, err := mail.ResetPasswordMessage(user.Email, s.cfg.FrontendOrigin, token, s.cfg.Validity)
	if err != nil {
		s.logger.Error(ctx, "reset email not rendered", "user_id", user.ID, "error", err)
		return nil
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error(ctx, "reset email not sent", "user_id", user.ID, "error", err)
		return nil
	}

	s.logger.Info(ctx, "password reset requested", "user_id", user.ID)
	return nil
}

// ConsumeReset sets a new password if token is outstanding and unexpired.
// The token is cleared in the same write, so it works once.
func (s *ResetService) ConsumeReset(ctx context.Context, token, password string) error {
	if token == "" {
		return common.NewValidationError("token", "token is required")
	}
	if err := validatePassword("password", password, s.cfg.PasswordMinLen); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repomanager.Users(s.db).ConsumeResetToken(ctx, common.SHA256Hex(token), hash, s.now())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidResetToken
		}
		return fmt.Errorf("consume reset token: %w", err)
	}

	s.logger.Info(ctx, "password reset completed", "user_id", id)
	return nil
}
