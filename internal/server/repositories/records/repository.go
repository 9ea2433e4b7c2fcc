// Package records stores income and expense entries, scoped by owner.
package records

import (
	"context"

	"github.com/dmitrijs2005/finplanner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.Record) (*models.Record, error)
	// ListByOwner orders by date, then creation time, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Record, error)
	Get(ctx context.Context, id, ownerID string) (*models.Record, error)
	Update(ctx context.Context, record *models.Record) (*models.Record, error)
	Delete(ctx context.Context, id, ownerID string) error
	Summary(ctx context.Context, ownerID string) (models.Summary, error)
}
