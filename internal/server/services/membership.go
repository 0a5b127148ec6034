package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
)

// MembershipService maintains the (user, world) membership ledger and serves
// the faceted profile view derived from it.
type MembershipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMembershipService(db *sql.DB, m repomanager.RepositoryManager) *MembershipService {
	return &MembershipService{db: db, repomanager: m}
}

// Join creates a membership with default role member and reputation 0. A
// second join for the same (user, world) pair loses against the uniqueness
// constraint and surfaces as a Conflict.
func (s *MembershipService) Join(ctx context.Context, userID, worldID string) (*models.CommunityMembership, error) {
	if _, err := s.repomanager.Worlds(s.db).GetByID(ctx, worldID); err != nil {
		return nil, err
	}

	m := &models.CommunityMembership{
		UserID:     userID,
		WorldID:    worldID,
		Role:       models.RoleMember,
		Reputation: 0,
	}
	created, err := s.repomanager.Memberships(s.db).Create(ctx, m)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: already a member of this world", common.ErrorAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

// ListMembers returns a world's memberships ordered by join time descending,
// visible to any authenticated caller.
func (s *MembershipService) ListMembers(ctx context.Context, worldID string) ([]*models.CommunityMembership, error) {
	if _, err := s.repomanager.Worlds(s.db).GetByID(ctx, worldID); err != nil {
		return nil, err
	}
	return s.repomanager.Memberships(s.db).ListByWorld(ctx, worldID)
}

// ListMemberships returns the caller's own memberships.
func (s *MembershipService) ListMemberships(ctx context.Context, userID string) ([]*models.CommunityMembership, error) {
	return s.repomanager.Memberships(s.db).ListByUser(ctx, userID)
}

// FacetedProfile aggregates a user's identity across their communities:
// basic account data plus one facet per membership. Pure projection, no side
// effects.
func (s *MembershipService) FacetedProfile(ctx context.Context, userID string) (*models.FacetedProfile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	facets, err := s.repomanager.Memberships(s.db).ListFacets(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.FacetedProfile{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		Memberships: facets,
	}, nil
}
