// Package httpapi exposes the resource-oriented HTTP surface of the server:
// JSON in/out, Bearer-token authentication, and the status-code taxonomy for
// business-rule violations.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/eudaimonia-labs/eudaimonia/internal/logging"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/services"
)

type Server struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte

	users       *services.UserService
	worlds      *services.WorldService
	memberships *services.MembershipService
	posts       *services.PostService
	friendships *services.FriendshipService
	governance  *services.GovernanceService
	profiles    *services.ProfileService
	artifacts   *services.ArtifactService
	exports     *services.ExportService
	companion   *services.CompanionService
}

// Services bundles the service dependencies of the HTTP layer.
type Services struct {
	Users       *services.UserService
	Worlds      *services.WorldService
	Memberships *services.MembershipService
	Posts       *services.PostService
	Friendships *services.FriendshipService
	Governance  *services.GovernanceService
	Profiles    *services.ProfileService
	Artifacts   *services.ArtifactService
	Exports     *services.ExportService
	Companion   *services.CompanionService
}

func NewServer(address string, l logging.Logger, svcs Services, secretKey string) (*Server, error) {
	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		jwtSecret:   []byte(secretKey),
		users:       svcs.Users,
		worlds:      svcs.Worlds,
		memberships: svcs.Memberships,
		posts:       svcs.Posts,
		friendships: svcs.Friendships,
		governance:  svcs.Governance,
		profiles:    svcs.Profiles,
		artifacts:   svcs.Artifacts,
		exports:     svcs.Exports,
		companion:   svcs.Companion,
	}, nil
}

// Routes builds the route table. Mutating endpoints require an authenticated
// identity; world, post and proposal listings are world-public (still behind
// authentication).
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	mux.HandleFunc("GET /api/worlds", s.requireAuth(s.handleListWorlds))
	mux.HandleFunc("POST /api/worlds", s.requireAuth(s.handleCreateWorld))
	mux.HandleFunc("GET /api/worlds/{id}", s.requireAuth(s.handleGetWorld))
	mux.HandleFunc("PATCH /api/worlds/{id}", s.requireAuth(s.handleUpdateWorld))
	mux.HandleFunc("DELETE /api/worlds/{id}", s.requireAuth(s.handleDeleteWorld))
	mux.HandleFunc("POST /api/worlds/{id}/join", s.requireAuth(s.handleJoinWorld))
	mux.HandleFunc("GET /api/worlds/{id}/posts", s.requireAuth(s.handleWorldPosts))
	mux.HandleFunc("GET /api/worlds/{id}/members", s.requireAuth(s.handleWorldMembers))

	mux.HandleFunc("GET /api/posts", s.requireAuth(s.handleListPosts))
	mux.HandleFunc("POST /api/posts", s.requireAuth(s.handleCreatePost))

	mux.HandleFunc("GET /api/friendships", s.requireAuth(s.handleListFriendships))
	mux.HandleFunc("POST /api/friendships", s.requireAuth(s.handleCreateFriendship))
	mux.HandleFunc("GET /api/friendships/pending", s.requireAuth(s.handlePendingFriendships))
	mux.HandleFunc("POST /api/friendships/{id}/accept", s.requireAuth(s.handleAcceptFriendship))
	mux.HandleFunc("POST /api/friendships/{id}/reject", s.requireAuth(s.handleRejectFriendship))
	mux.HandleFunc("GET /api/friends", s.requireAuth(s.handleListFriends))

	mux.HandleFunc("GET /api/proposals", s.requireAuth(s.handleListProposals))
	mux.HandleFunc("POST /api/proposals", s.requireAuth(s.handleCreateProposal))
	mux.HandleFunc("GET /api/proposals/{id}/votes", s.requireAuth(s.handleProposalVotes))
	mux.HandleFunc("GET /api/proposals/{id}/tally", s.requireAuth(s.handleProposalTally))
	mux.HandleFunc("GET /api/votes", s.requireAuth(s.handleListVotes))
	mux.HandleFunc("POST /api/votes", s.requireAuth(s.handleCastVote))

	mux.HandleFunc("GET /api/profiles", s.requireAuth(s.handleListProfiles))
	mux.HandleFunc("POST /api/profiles", s.requireAuth(s.handleCreateProfile))
	mux.HandleFunc("GET /api/credentials", s.requireAuth(s.handleListCredentials))
	mux.HandleFunc("POST /api/credentials", s.requireAuth(s.handleAttachCredential))

	mux.HandleFunc("GET /api/artifacts", s.requireAuth(s.handleListArtifacts))
	mux.HandleFunc("POST /api/artifacts", s.requireAuth(s.handlePublishArtifact))
	mux.HandleFunc("GET /api/artifacts/{id}/content", s.requireAuth(s.handleArtifactContent))

	mux.HandleFunc("GET /api/exports", s.requireAuth(s.handleListExports))
	mux.HandleFunc("POST /api/exports", s.requireAuth(s.handleRequestExport))

	mux.HandleFunc("GET /api/users/{id}/profile", s.requireAuth(s.handleFacetedProfile))

	mux.HandleFunc("POST /api/companion/query", s.requireAuth(s.handleCompanionQuery))

	return s.logRequests(mux)
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
