package models

import "time"

type ArtifactType string

const (
	ArtifactPreprint ArtifactType = "preprint"
	ArtifactDataset  ArtifactType = "dataset"
	ArtifactCode     ArtifactType = "code"
	ArtifactReview   ArtifactType = "review"
	ArtifactOther    ArtifactType = "other"
)

// ValidArtifactType reports whether t is a known artifact type.
func ValidArtifactType(t ArtifactType) bool {
	switch t {
	case ArtifactPreprint, ArtifactDataset, ArtifactCode, ArtifactReview, ArtifactOther:
		return true
	}
	return false
}

// ResearchArtifact describes a piece of work whose content lives in the
// content-addressed blob store under CID. The CID is unique: pinning the
// same bytes twice maps to the same artifact.
type ResearchArtifact struct {
	ID        string
	Title     string
	Abstract  string
	Type      ArtifactType
	CID       string
	AuthorID  string
	WorldID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
