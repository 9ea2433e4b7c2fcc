// Package notes stores free-form notes, scoped by owner.
package notes

import (
	"context"

	"github.com/dmitrijs2005/finplanner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)
	Get(ctx context.Context, id, ownerID string) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id, ownerID string) error
}
