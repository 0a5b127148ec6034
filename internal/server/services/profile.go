package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
)

// ProfileService manages smart-profile identity facets and the credentials
// issued to them. Credential payloads are opaque: no schema validation and
// no issuer authentication happen here; trust is delegated to an external
// verification collaborator.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// CreateProfile creates a named facet for the caller. Facet names are unique
// per user.
func (s *ProfileService) CreateProfile(ctx context.Context, userID, name, did string) (*models.SmartProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	p := &models.SmartProfile{UserID: userID, Name: name, DID: did}
	created, err := s.repomanager.Profiles(s.db).Create(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: profile name or DID already in use", common.ErrorAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

// ListProfiles returns the caller's own facets.
func (s *ProfileService) ListProfiles(ctx context.Context, userID string) ([]*models.SmartProfile, error) {
	return s.repomanager.Profiles(s.db).ListByUser(ctx, userID)
}

// AttachCredential stores an opaque credential against one of the caller's
// profiles. Attaching to someone else's profile is Forbidden.
func (s *ProfileService) AttachCredential(ctx context.Context, callerID, profileID string, payload map[string]any, issuer string) (*models.VerifiableCredential, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != callerID {
		return nil, common.ErrorForbidden
	}

	c := &models.VerifiableCredential{
		ProfileID: profileID,
		Payload:   payload,
		Issuer:    issuer,
	}
	return s.repomanager.Credentials(s.db).Create(ctx, c)
}

// ListCredentials returns credentials across all of the caller's profiles.
func (s *ProfileService) ListCredentials(ctx context.Context, callerID string) ([]*models.VerifiableCredential, error) {
	return s.repomanager.Credentials(s.db).ListByOwner(ctx, callerID)
}
