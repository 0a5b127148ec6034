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

// FriendshipService implements the social graph. Each edge is a directed
// request (user1 → user2) with a three-state machine:
// pending → accepted or pending → rejected, both terminal. Only the
// recipient may transition a pending edge.
type FriendshipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFriendshipService(db *sql.DB, m repomanager.RepositoryManager) *FriendshipService {
	return &FriendshipService{db: db, repomanager: m}
}

// Request creates a pending edge from the caller to the user with the given
// username. A duplicate request in the same direction is a Conflict; the
// reverse direction is not deduplicated.
func (s *FriendshipService) Request(ctx context.Context, callerID, recipientUsername string) (*models.Friendship, error) {
	recipient, err := s.repomanager.Users(s.db).GetByUsername(ctx, recipientUsername)
	if err != nil {
		return nil, err
	}
	if recipient.ID == callerID {
		return nil, fmt.Errorf("%w: cannot befriend yourself", common.ErrorValidation)
	}

	f := &models.Friendship{
		User1ID: callerID,
		User2ID: recipient.ID,
		Status:  models.FriendshipPending,
	}
	created, err := s.repomanager.Friendships(s.db).Create(ctx, f)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: friendship request already exists", common.ErrorAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

// Accept transitions a pending edge to accepted.
func (s *FriendshipService) Accept(ctx context.Context, callerID, friendshipID string) (*models.Friendship, error) {
	return s.transition(ctx, callerID, friendshipID, models.FriendshipAccepted)
}

// Reject transitions a pending edge to rejected.
func (s *FriendshipService) Reject(ctx context.Context, callerID, friendshipID string) (*models.Friendship, error) {
	return s.transition(ctx, callerID, friendshipID, models.FriendshipRejected)
}

// transition enforces the edge state machine: the caller must be the
// recipient, and the edge must still be pending. The pending precondition is
// re-checked inside the UPDATE so a concurrent transition cannot apply twice.
func (s *FriendshipService) transition(ctx context.Context, callerID, friendshipID string, to models.FriendshipStatus) (*models.Friendship, error) {
	repo := s.repomanager.Friendships(s.db)

	f, err := repo.GetByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if f.User2ID != callerID {
		return nil, common.ErrorForbidden
	}
	if f.Status != models.FriendshipPending {
		return nil, fmt.Errorf("%w: friendship is not pending", common.ErrorAlreadyExists)
	}

	changed, err := repo.UpdateStatus(ctx, friendshipID, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("%w: friendship is not pending", common.ErrorAlreadyExists)
	}

	f.Status = to
	return f, nil
}

// ListFriends derives the undirected friend set: accepted edges where the
// user is either side, returning the other party of each.
func (s *FriendshipService) ListFriends(ctx context.Context, userID string) ([]*models.User, error) {
	edges, err := s.repomanager.Friendships(s.db).ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	usersRepo := s.repomanager.Users(s.db)
	friends := make([]*models.User, 0, len(edges))
	for _, edge := range edges {
		otherID := edge.User1ID
		if otherID == userID {
			otherID = edge.User2ID
		}
		friend, err := usersRepo.GetByID(ctx, otherID)
		if err != nil {
			return nil, err
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

// ListPending returns pending requests addressed to the caller.
func (s *FriendshipService) ListPending(ctx context.Context, callerID string) ([]*models.Friendship, error) {
	return s.repomanager.Friendships(s.db).ListPendingFor(ctx, callerID)
}

// List returns edges where the caller is either side.
func (s *FriendshipService) List(ctx context.Context, callerID string) ([]*models.Friendship, error) {
	return s.repomanager.Friendships(s.db).ListForUser(ctx, callerID)
}
