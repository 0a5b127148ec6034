package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/pinning"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
)

// ArtifactService publishes research artifacts: the content is pinned to the
// content-addressed blob store and the metadata row references it by CID.
type ArtifactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pinner      pinning.Pinner
}

func NewArtifactService(db *sql.DB, m repomanager.RepositoryManager, p pinning.Pinner) *ArtifactService {
	return &ArtifactService{db: db, repomanager: m, pinner: p}
}

// Publish pins the content and records the artifact. A pin-store failure
// surfaces as upstream-unavailable; publishing identical bytes twice is a
// Conflict on the CID.
func (s *ArtifactService) Publish(ctx context.Context, authorID, worldID, title, abstract string, artifactType models.ArtifactType, content []byte) (*models.ResearchArtifact, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if !models.ValidArtifactType(artifactType) {
		return nil, fmt.Errorf("%w: unknown artifact type %q", common.ErrorValidation, artifactType)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}

	if _, err := s.repomanager.Worlds(s.db).GetByID(ctx, worldID); err != nil {
		return nil, err
	}

	cid, err := s.pinner.Put(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	a := &models.ResearchArtifact{
		Title:    title,
		Abstract: abstract,
		Type:     artifactType,
		CID:      cid,
		AuthorID: authorID,
		WorldID:  worldID,
	}
	created, err := s.repomanager.Artifacts(s.db).Create(ctx, a)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: content already published", common.ErrorAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

// List returns artifacts newest-first, optionally filtered by world.
func (s *ArtifactService) List(ctx context.Context, worldID string) ([]*models.ResearchArtifact, error) {
	return s.repomanager.Artifacts(s.db).List(ctx, worldID)
}

// FetchContent retrieves an artifact's pinned content.
func (s *ArtifactService) FetchContent(ctx context.Context, id string) ([]byte, *models.ResearchArtifact, error) {
	a, err := s.repomanager.Artifacts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.pinner.Get(ctx, a.CID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}
	return content, a, nil
}
