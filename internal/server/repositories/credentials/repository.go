// Package credentials provides persistence for verifiable credentials
// attached to smart profiles. Payloads are stored opaquely.
package credentials

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.VerifiableCredential) (*models.VerifiableCredential, error)
	// ListByOwner returns credentials across all profiles owned by the user.
	ListByOwner(ctx context.Context, userID string) ([]*models.VerifiableCredential, error)
}
