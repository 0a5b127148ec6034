// Package worlds provides persistence for LivingWorld communities.
package worlds

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, world *models.LivingWorld) (*models.LivingWorld, error)
	GetByID(ctx context.Context, id string) (*models.LivingWorld, error)
	List(ctx context.Context, category models.WorldCategory) ([]*models.LivingWorld, error)
	Update(ctx context.Context, world *models.LivingWorld) error
	Delete(ctx context.Context, id string) error
}
