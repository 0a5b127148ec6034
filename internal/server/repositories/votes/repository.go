// Package votes provides persistence for votes cast on proposals.
package votes

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, v *models.Vote) (*models.Vote, error)
	ListByProposal(ctx context.Context, proposalID string) ([]*models.Vote, error)
	ListByVoter(ctx context.Context, voterID string) ([]*models.Vote, error)
	// Tally counts votes grouped by choice; it is computed on demand, never
	// stored.
	Tally(ctx context.Context, proposalID string) (*models.Tally, error)
}
