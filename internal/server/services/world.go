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

// WorldService manages LivingWorld communities. The owner is always stamped
// from the authenticated caller and never taken from client input.
type WorldService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWorldService(db *sql.DB, m repomanager.RepositoryManager) *WorldService {
	return &WorldService{db: db, repomanager: m}
}

func (s *WorldService) CreateWorld(ctx context.Context, ownerID, name, description string, category models.WorldCategory, themeData map[string]any) (*models.LivingWorld, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, category)
	}

	world := &models.LivingWorld{
		Name:        name,
		Description: description,
		Category:    category,
		ThemeData:   themeData,
		OwnerID:     ownerID,
	}
	return s.repomanager.Worlds(s.db).Create(ctx, world)
}

func (s *WorldService) GetWorld(ctx context.Context, id string) (*models.LivingWorld, error) {
	return s.repomanager.Worlds(s.db).GetByID(ctx, id)
}

// ListWorlds returns all worlds, optionally restricted to one category.
// World listings are public to any authenticated caller.
func (s *WorldService) ListWorlds(ctx context.Context, category models.WorldCategory) ([]*models.LivingWorld, error) {
	if category != "" && !models.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, category)
	}
	return s.repomanager.Worlds(s.db).List(ctx, category)
}

// UpdateWorld changes description and theme data. Name and owner are
// immutable; only the owner may update.
func (s *WorldService) UpdateWorld(ctx context.Context, callerID, id string, description *string, themeData map[string]any) (*models.LivingWorld, error) {
	repo := s.repomanager.Worlds(s.db)

	world, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if world.OwnerID != callerID {
		return nil, common.ErrorForbidden
	}

	if description != nil {
		world.Description = *description
	}
	if themeData != nil {
		world.ThemeData = themeData
	}

	if err := repo.Update(ctx, world); err != nil {
		return nil, err
	}
	return world, nil
}

// DeleteWorld removes a world and, by cascade, its posts, memberships,
// proposals and artifacts. Only the owner may delete.
func (s *WorldService) DeleteWorld(ctx context.Context, callerID, id string) error {
	repo := s.repomanager.Worlds(s.db)

	world, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if world.OwnerID != callerID {
		return common.ErrorForbidden
	}

	return repo.Delete(ctx, id)
}
