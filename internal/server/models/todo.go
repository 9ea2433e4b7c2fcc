package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
)

const MaxTitleLen = 200

type Todo struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TodoPatch carries a partial update; nil fields are left unchanged.
type TodoPatch struct {
	Title     *string
	Completed *bool
}

// Apply merges p into t. CompletedAt follows the transitions of Completed.
func (t *Todo) Apply(p TodoPatch, now time.Time) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Completed != nil && *p.Completed != t.Completed {
		t.Completed = *p.Completed
		if t.Completed {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
	}
}

func (t *Todo) Validate() error {
	return validateTitle(t.Title)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.NewValidationError("title", "title is required")
	}
	if len([]rune(title)) > MaxTitleLen {
		return common.NewValidationError("title", "title must be at most 200 characters")
	}
	return nil
}
