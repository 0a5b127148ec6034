// Package friendships provides persistence for the social graph.
package friendships

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.Friendship) (*models.Friendship, error)
	GetByID(ctx context.Context, id string) (*models.Friendship, error)
	// UpdateStatus transitions a pending edge and reports whether a row was
	// actually changed. The pending precondition is part of the statement so
	// a concurrent transition cannot apply twice.
	UpdateStatus(ctx context.Context, id string, status models.FriendshipStatus) (bool, error)
	// ListForUser returns edges where the user is either side.
	ListForUser(ctx context.Context, userID string) ([]*models.Friendship, error)
	// ListPendingFor returns pending edges addressed to the user.
	ListPendingFor(ctx context.Context, userID string) ([]*models.Friendship, error)
	// ListAcceptedFor returns accepted edges where the user is either side.
	ListAcceptedFor(ctx context.Context, userID string) ([]*models.Friendship, error)
}
