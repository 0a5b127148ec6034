package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

func seedWorld(t *testing.T, rm *fakeRepoManager, ownerID, name string) *models.LivingWorld {
	t.Helper()
	w, err := rm.worlds.Create(context.Background(), &models.LivingWorld{
		Name: name, Category: models.CategorySocial, OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("seed world %s: %v", name, err)
	}
	return w
}

func seedUser(t *testing.T, rm *fakeRepoManager, username string) *models.User {
	t.Helper()
	u, err := rm.users.Create(context.Background(), &models.User{
		Username: username, Email: username + "@example.com", PasswordHash: "bcrypt$" + username,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func TestJoin_CreatesDefaultMembership(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewMembershipService(nil, rm)
	w := seedWorld(t, rm, "u-owner", "Athens")

	m, err := s.Join(context.Background(), "u-1", w.ID)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	if m.Role != models.RoleMember || m.Reputation != 0 {
		t.Fatalf("want default role/reputation, got %+v", m)
	}
}

func TestJoin_TwiceConflicts(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewMembershipService(nil, rm)
	w := seedWorld(t, rm, "u-owner", "Athens")

	if _, err := s.Join(context.Background(), "u-1", w.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, err := s.Join(context.Background(), "u-1", w.ID)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("second join: want conflict, got %v", err)
	}
}

func TestJoin_UnknownWorld(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewMembershipService(nil, rm)

	_, err := s.Join(context.Background(), "u-1", "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestListMembers_UnknownWorld(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewMembershipService(nil, rm)

	_, err := s.ListMembers(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestFacetedProfile(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewMembershipService(nil, rm)
	u := seedUser(t, rm, "alice")

	rm.memberships.facets[u.ID] = []models.MembershipFacet{
		{WorldName: "Athens", Role: models.RoleMember, Reputation: 10},
		{WorldName: "Lab", Role: models.RoleModerator, Reputation: 150},
	}

	p, err := s.FacetedProfile(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FacetedProfile error: %v", err)
	}
	if p.Username != "alice" || len(p.Memberships) != 2 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.Memberships[1].Role != models.RoleModerator {
		t.Fatalf("unexpected facet: %+v", p.Memberships[1])
	}
}

func TestFacetedProfile_UnknownUser(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewMembershipService(nil, rm)

	_, err := s.FacetedProfile(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
