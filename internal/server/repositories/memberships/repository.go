// Package memberships provides persistence for the (user, world) membership
// ledger.
package memberships

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.CommunityMembership) (*models.CommunityMembership, error)
	// ListByWorld returns memberships ordered by join time descending.
	ListByWorld(ctx context.Context, worldID string) ([]*models.CommunityMembership, error)
	ListByUser(ctx context.Context, userID string) ([]*models.CommunityMembership, error)
	// ListFacets joins the user's memberships with their worlds for the
	// faceted profile view.
	ListFacets(ctx context.Context, userID string) ([]models.MembershipFacet, error)
}
