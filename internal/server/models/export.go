package models

import "time"

type ExportStatus string

const (
	ExportPending    ExportStatus = "pending"
	ExportInProgress ExportStatus = "in_progress"
	ExportComplete   ExportStatus = "complete"
	ExportFailed     ExportStatus = "failed"
)

// DataExport tracks a user-requested export of their data. CID references
// the pinned export blob once the job completes.
type DataExport struct {
	ID        string
	UserID    string
	Status    ExportStatus
	CID       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
