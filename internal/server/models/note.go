package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
)

const MaxNoteContentLen = 10000

type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NotePatch struct {
	Title   *string
	Content *string
}

func (n *Note) Apply(p NotePatch) {
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}

func (n *Note) Validate() error {
	if err := validateTitle(n.Title); err != nil {
		return err
	}
	if len([]rune(n.Content)) > MaxNoteContentLen {
		return common.NewValidationError("content", "content must be at most 10000 characters")
	}
	return nil
}
