// Package exports provides persistence for data-export job records.
package exports

import (
	"context"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.DataExport) (*models.DataExport, error)
	ListByUser(ctx context.Context, userID string) ([]*models.DataExport, error)
	ListPending(ctx context.Context) ([]*models.DataExport, error)
	// UpdateStatus moves a job between states; the expected current status is
	// part of the statement so two runners cannot claim the same job.
	UpdateStatus(ctx context.Context, id string, from, to models.ExportStatus, cid string) (bool, error)
}
