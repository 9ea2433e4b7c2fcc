// Package todos stores to-do items. Every query is scoped by owner; a row
// owned by someone else behaves exactly like a missing row.
package todos

import (
	"context"

	"github.com/dmitrijs2005/finplanner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	// ListByOwner returns the owner's todos, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error)
	Get(ctx context.Context, id, ownerID string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, id, ownerID string) error
}
