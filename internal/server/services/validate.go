// Package services holds the business rules: account and session handling,
// password reset, and owner-scoped CRUD for todos, notes and records.
package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// validID rejects ids that cannot exist; callers report them as not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func normalizeUserName(s string) string { return strings.TrimSpace(s) }

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func validateEmail(email string) error {
	if email == "" {
		return common.NewValidationError("email", "email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return common.NewValidationError("email", "email is not valid")
	}
	return nil
}

func validatePassword(field, password string, minLen int) error {
	if password == "" {
		return common.NewValidationError(field, field+" is required")
	}
	if len([]rune(password)) < minLen {
		return common.NewValidationError(field, fmt.Sprintf("password must be at least %d characters", minLen))
	}
	if len(password) > auth.MaxPasswordBytes {
		return common.NewValidationError(field, "password must be at most 72 bytes")
	}
	return nil
}
