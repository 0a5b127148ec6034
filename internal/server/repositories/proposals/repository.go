// Package proposals provides persistence for governance proposals.
package proposals

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error)
	GetByID(ctx context.Context, id string) (*models.Proposal, error)
	// List returns proposals newest-first, optionally filtered by world.
	List(ctx context.Context, worldID string) ([]*models.Proposal, error)
}
