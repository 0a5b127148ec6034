package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
)

// PostService manages world-scoped content. The author is always the caller.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

func (s *PostService) CreatePost(ctx context.Context, authorID, worldID, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}
	if worldID == "" {
		return nil, fmt.Errorf("%w: world_id is required", common.ErrorValidation)
	}

	if _, err := s.repomanager.Worlds(s.db).GetByID(ctx, worldID); err != nil {
		return nil, err
	}

	post := &models.Post{Content: content, AuthorID: authorID, WorldID: worldID}
	return s.repomanager.Posts(s.db).Create(ctx, post)
}

// ListPosts returns posts newest-first, optionally restricted to one world.
func (s *PostService) ListPosts(ctx context.Context, worldID string) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx, worldID)
}
