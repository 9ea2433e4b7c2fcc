package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
)

// Session is what a successful register or login hands back to the client.
type Session struct {
	User  *models.User
	Token string
}

// UserService manages accounts: registration, credential checks, profile,
// settings and password changes.
type UserService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	tokens         *auth.Issuer
	hasher         *auth.Hasher
	passwordMinLen int
	logger         logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Issuer, hasher *auth.Hasher,
	passwordMinLen int, logger logging.Logger) *UserService {
	return &UserService{
		db:             db,
		repomanager:    m,
		tokens:         tokens,
		hasher:         hasher,
		passwordMinLen: passwordMinLen,
		logger:         logger.With("module", "users"),
	}
}

// Register creates an account and signs the caller in. Username is trimmed
// and case-sensitive; email is trimmed and lower-cased.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = normalizeUserName(username)
	email = normalizeEmail(email)

	if username == "" {
		return nil, common.NewValidationError("username", "username is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword("password", password, s.passwordMinLen); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		Settings:     models.DefaultSettings(),
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		var dup *common.DuplicateError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.session(user)
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

// VerifyCredentials returns common.ErrInvalidCredentials both for an unknown
// username and a wrong password. Each path costs one bcrypt comparison.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUserName(ctx, normalizeUserName(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

// Profile returns the user by id, or common.ErrNotFound.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, common.ErrNotFound
	}
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) Settings(ctx context.Context, userID string) (models.Settings, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}
	return u.Settings, nil
}

// UpdateSettings stores a new currency. An empty symbol takes the catalog
// symbol for the code.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, in models.Settings) (models.Settings, error) {
	if in.Currency == "" {
		return models.Settings{}, common.NewValidationError("currency", "currency is required")
	}
	symbol, ok := models.CurrencySymbol(in.Currency)
	if !ok {
		return models.Settings{}, common.NewValidationError("currency", fmt.Sprintf("currency %q is not supported", in.Currency))
	}
	if in.CurrencySymbol == "" {
		in.CurrencySymbol = symbol
	}
	if !validID(userID) {
		return models.Settings{}, common.ErrNotFound
	}

	u, err := s.repomanager.Users(s.db).UpdateSettings(ctx, userID, in)
	if err != nil {
		return models.Settings{}, err
	}
	return u.Settings, nil
}

// ChangePassword requires the current password. A wrong one yields
// common.ErrInvalidCredentials. Any pending reset token is dropped.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" {
		return common.NewValidationError("currentPassword", "currentPassword is required")
	}
	if err := validatePassword("newPassword", next, s.passwordMinLen); err != nil {
		return err
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.PasswordHash, current) {
		return common.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info(ctx, "password changed", "user_id", user.ID)
	return nil
}
