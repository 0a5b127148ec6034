// Package artifacts provides persistence for research artifacts whose
// content lives in the content-addressed blob store.
package artifacts

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.ResearchArtifact) (*models.ResearchArtifact, error)
	GetByID(ctx context.Context, id string) (*models.ResearchArtifact, error)
	List(ctx context.Context, worldID string) ([]*models.ResearchArtifact, error)
}
