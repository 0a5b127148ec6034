// Package posts provides persistence for world-scoped content.
package posts

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// List returns posts newest-first, optionally restricted to one world
	// (empty worldID means no filter).
	List(ctx context.Context, worldID string) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
}
