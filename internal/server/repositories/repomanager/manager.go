package repomanager

import (
	"context"
	"database/sql"

	"github.com/eudaimonia-labs/eudaimonia/internal/dbx"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/artifacts"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/credentials"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/exports"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/friendships"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/memberships"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/posts"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/profiles"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/proposals"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/refreshtokens"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/users"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/votes"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/worlds"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Worlds(db dbx.DBTX) worlds.Repository
	Posts(db dbx.DBTX) posts.Repository
	Friendships(db dbx.DBTX) friendships.Repository
	Memberships(db dbx.DBTX) memberships.Repository
	Proposals(db dbx.DBTX) proposals.Repository
	Votes(db dbx.DBTX) votes.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Artifacts(db dbx.DBTX) artifacts.Repository
	Exports(db dbx.DBTX) exports.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
