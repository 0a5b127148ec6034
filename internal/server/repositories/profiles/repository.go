// Package profiles provides persistence for smart-profile identity facets.
package profiles

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.SmartProfile) (*models.SmartProfile, error)
	GetByID(ctx context.Context, id string) (*models.SmartProfile, error)
	ListByUser(ctx context.Context, userID string) ([]*models.SmartProfile, error)
}
