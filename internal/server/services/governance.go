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

// GovernanceService manages proposals and votes. A vote is final: there is
// no update or retraction path, and the (proposal, voter) uniqueness
// constraint arbitrates concurrent casts.
type GovernanceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGovernanceService(db *sql.DB, m repomanager.RepositoryManager) *GovernanceService {
	return &GovernanceService{db: db, repomanager: m}
}

func (s *GovernanceService) CreateProposal(ctx context.Context, creatorID, worldID, title, description string) (*models.Proposal, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if worldID == "" {
		return nil, fmt.Errorf("%w: world_id is required", common.ErrorValidation)
	}

	if _, err := s.repomanager.Worlds(s.db).GetByID(ctx, worldID); err != nil {
		return nil, err
	}

	p := &models.Proposal{
		Title:       title,
		Description: description,
		WorldID:     worldID,
		CreatorID:   creatorID,
	}
	return s.repomanager.Proposals(s.db).Create(ctx, p)
}

func (s *GovernanceService) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	return s.repomanager.Proposals(s.db).GetByID(ctx, id)
}

// ListProposals returns proposals newest-first, optionally filtered by world.
func (s *GovernanceService) ListProposals(ctx context.Context, worldID string) ([]*models.Proposal, error) {
	return s.repomanager.Proposals(s.db).List(ctx, worldID)
}

// CastVote records the voter's final choice on a proposal. A second vote by
// the same voter is a Conflict and leaves the first choice unchanged.
func (s *GovernanceService) CastVote(ctx context.Context, voterID, proposalID string, choice models.VoteChoice) (*models.Vote, error) {
	if !models.ValidVoteChoice(choice) {
		return nil, fmt.Errorf("%w: unknown choice %q", common.ErrorValidation, choice)
	}

	if _, err := s.repomanager.Proposals(s.db).GetByID(ctx, proposalID); err != nil {
		return nil, err
	}

	v := &models.Vote{ProposalID: proposalID, VoterID: voterID, Choice: choice}
	created, err := s.repomanager.Votes(s.db).Create(ctx, v)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: already voted on this proposal", common.ErrorAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

// ListVotes returns the votes cast on a proposal.
func (s *GovernanceService) ListVotes(ctx context.Context, proposalID string) ([]*models.Vote, error) {
	if _, err := s.repomanager.Proposals(s.db).GetByID(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.repomanager.Votes(s.db).ListByProposal(ctx, proposalID)
}

// ListOwnVotes returns the caller's votes across proposals.
func (s *GovernanceService) ListOwnVotes(ctx context.Context, voterID string) ([]*models.Vote, error) {
	return s.repomanager.Votes(s.db).ListByVoter(ctx, voterID)
}

// Tally computes the per-choice vote counts for a proposal on demand.
func (s *GovernanceService) Tally(ctx context.Context, proposalID string) (*models.Tally, error) {
	if _, err := s.repomanager.Proposals(s.db).GetByID(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.repomanager.Votes(s.db).Tally(ctx, proposalID)
}
