package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/users"
)

type UserRepository struct {
	s *Store
}

var _ users.Repository = (*UserRepository)(nil)

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.ResetTokenHash != nil {
		h := *u.ResetTokenHash
		c.ResetTokenHash = &h
	}
	if u.ResetTokenExpiresAt != nil {
		e := *u.ResetTokenExpiresAt
		c.ResetTokenExpiresAt = &e
	}
	return &c
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.UserName == user.UserName {
			return nil, &common.DuplicateError{Field: "username"}
		}
		if u.Email == user.Email {
			return nil, &common.DuplicateError{Field: "email"}
		}
	}

	id, _ := r.s.nextID()
	now := r.s.now()
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[id] = cloneUser(user)

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByUserName(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UserName == username })
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *UserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	u.UpdatedAt = r.s.now()
	return nil
}

func (r *UserRepository) UpdateSettings(ctx context.Context, id string, settings models.Settings) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Settings = settings
	u.UpdatedAt = r.s.now()
	return cloneUser(u), nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpiresAt = &expiresAt
	u.UpdatedAt = r.s.now()
	return nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ResetTokenHash == nil || *u.ResetTokenHash != tokenHash {
			continue
		}
		if u.ResetTokenExpiresAt == nil || !u.ResetTokenExpiresAt.After(now) {
			return "", common.ErrNotFound
		}
		u.PasswordHash = passwordHash
		u.ResetTokenHash = nil
		u.ResetTokenExpiresAt = nil
		u.UpdatedAt = r.s.now()
		return u.ID, nil
	}
	return "", common.ErrNotFound
}

func (r *UserRepository) ListPasswordHashes(ctx context.Context) ([]users.PasswordHash, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]users.PasswordHash, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, users.PasswordHash{UserID: u.ID, Hash: u.PasswordHash})
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.users[out[i].UserID].CreatedAt.Before(r.s.users[out[j].UserID].CreatedAt)
	})
	return out, nil
}
