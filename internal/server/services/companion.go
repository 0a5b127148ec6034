package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/companion"
)

// CompanionService answers free-text queries through the injected Completer,
// giving the upstream model the caller's faceted profile as context. The
// upstream call is synchronous and never retried; its failure surfaces as
// upstream-unavailable.
type CompanionService struct {
	memberships *MembershipService
	completer   companion.Completer
}

func NewCompanionService(memberships *MembershipService, c companion.Completer) *CompanionService {
	return &CompanionService{memberships: memberships, completer: c}
}

func (s *CompanionService) Query(ctx context.Context, callerID, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", common.ErrorValidation)
	}

	profile, err := s.memberships.FacetedProfile(ctx, callerID)
	if err != nil {
		return "", err
	}

	userContext, err := json.Marshal(profile)
	if err != nil {
		return "", common.ErrorInternal
	}

	answer, err := s.completer.Complete(ctx, string(userContext), query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}
	return answer, nil
}
