package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/dbx"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
	artifactsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/artifacts"
	credentialsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/credentials"
	exportsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/exports"
	friendshipsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/friendships"
	membershipsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/memberships"
	postsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/posts"
	profilesrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/profiles"
	proposalsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/proposals"
	refreshtokensrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/refreshtokens"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
	usersrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/users"
	votesrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/votes"
	worldsrepo "github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/worlds"
)

// In-memory fakes backing the service tests. They enforce the same
// uniqueness rules the schema does, so conflict paths behave like Postgres
// without a database.

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type memUsers struct {
	seq   int
	byID  map[string]*models.User
	err   error
	users []*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.users {
		if ex.Username == u.Username || ex.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("u-%d", m.seq)
	u.CreatedAt = time.Now()
	m.byID[u.ID] = u
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memWorlds struct {
	seq    int
	byID   map[string]*models.LivingWorld
	worlds []*models.LivingWorld
	err    error
}

func newMemWorlds() *memWorlds {
	return &memWorlds{byID: map[string]*models.LivingWorld{}}
}

func (m *memWorlds) Create(ctx context.Context, w *models.LivingWorld) (*models.LivingWorld, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.worlds {
		if ex.Name == w.Name {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	w.ID = fmt.Sprintf("w-%d", m.seq)
	w.CreatedAt = time.Now()
	m.byID[w.ID] = w
	m.worlds = append(m.worlds, w)
	return w, nil
}

func (m *memWorlds) GetByID(ctx context.Context, id string) (*models.LivingWorld, error) {
	if m.err != nil {
		return nil, m.err
	}
	if w, ok := m.byID[id]; ok {
		return w, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memWorlds) List(ctx context.Context, category models.WorldCategory) ([]*models.LivingWorld, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.LivingWorld
	for _, w := range m.worlds {
		if category == "" || w.Category == category {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWorlds) Update(ctx context.Context, w *models.LivingWorld) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[w.ID]; !ok {
		return common.ErrorNotFound
	}
	m.byID[w.ID] = w
	return nil
}

func (m *memWorlds) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	for i, w := range m.worlds {
		if w.ID == id {
			m.worlds = append(m.worlds[:i], m.worlds[i+1:]...)
			break
		}
	}
	return nil
}

type memPosts struct {
	seq   int
	posts []*models.Post
	err   error
}

func (m *memPosts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	p.ID = fmt.Sprintf("p-%d", m.seq)
	p.CreatedAt = time.Now()
	m.posts = append(m.posts, p)
	return p, nil
}

func (m *memPosts) List(ctx context.Context, worldID string) ([]*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Post
	for _, p := range m.posts {
		if worldID == "" || p.WorldID == worldID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPosts) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memFriendships struct {
	seq   int
	edges []*models.Friendship
	err   error
}

func (m *memFriendships) Create(ctx context.Context, f *models.Friendship) (*models.Friendship, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.edges {
		if ex.User1ID == f.User1ID && ex.User2ID == f.User2ID {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	f.ID = fmt.Sprintf("f-%d", m.seq)
	f.CreatedAt = time.Now()
	m.edges = append(m.edges, f)
	return f, nil
}

func (m *memFriendships) GetByID(ctx context.Context, id string) (*models.Friendship, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, f := range m.edges {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memFriendships) UpdateStatus(ctx context.Context, id string, status models.FriendshipStatus) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, f := range m.edges {
		if f.ID == id && f.Status == models.FriendshipPending {
			f.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (m *memFriendships) ListForUser(ctx context.Context, userID string) ([]*models.Friendship, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Friendship
	for _, f := range m.edges {
		if f.User1ID == userID || f.User2ID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFriendships) ListPendingFor(ctx context.Context, userID string) ([]*models.Friendship, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Friendship
	for _, f := range m.edges {
		if f.User2ID == userID && f.Status == models.FriendshipPending {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFriendships) ListAcceptedFor(ctx context.Context, userID string) ([]*models.Friendship, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Friendship
	for _, f := range m.edges {
		if (f.User1ID == userID || f.User2ID == userID) && f.Status == models.FriendshipAccepted {
			out = append(out, f)
		}
	}
	return out, nil
}

type memMemberships struct {
	seq     int
	members []*models.CommunityMembership
	facets  map[string][]models.MembershipFacet
	err     error
}

func (m *memMemberships) Create(ctx context.Context, cm *models.CommunityMembership) (*models.CommunityMembership, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.members {
		if ex.UserID == cm.UserID && ex.WorldID == cm.WorldID {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	cm.ID = fmt.Sprintf("m-%d", m.seq)
	cm.JoinedAt = time.Now()
	m.members = append(m.members, cm)
	return cm, nil
}

func (m *memMemberships) ListByWorld(ctx context.Context, worldID string) ([]*models.CommunityMembership, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.CommunityMembership
	for _, cm := range m.members {
		if cm.WorldID == worldID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (m *memMemberships) ListByUser(ctx context.Context, userID string) ([]*models.CommunityMembership, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.CommunityMembership
	for _, cm := range m.members {
		if cm.UserID == userID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (m *memMemberships) ListFacets(ctx context.Context, userID string) ([]models.MembershipFacet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.facets[userID], nil
}

type memProposals struct {
	seq       int
	proposals []*models.Proposal
	err       error
}

func (m *memProposals) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	p.ID = fmt.Sprintf("prop-%d", m.seq)
	p.CreatedAt = time.Now()
	m.proposals = append(m.proposals, p)
	return p, nil
}

func (m *memProposals) GetByID(ctx context.Context, id string) (*models.Proposal, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.proposals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memProposals) List(ctx context.Context, worldID string) ([]*models.Proposal, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Proposal
	for _, p := range m.proposals {
		if worldID == "" || p.WorldID == worldID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memVotes struct {
	seq   int
	votes []*models.Vote
	err   error
}

func (m *memVotes) Create(ctx context.Context, v *models.Vote) (*models.Vote, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.votes {
		if ex.ProposalID == v.ProposalID && ex.VoterID == v.VoterID {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	v.ID = fmt.Sprintf("v-%d", m.seq)
	v.CreatedAt = time.Now()
	m.votes = append(m.votes, v)
	return v, nil
}

func (m *memVotes) ListByProposal(ctx context.Context, proposalID string) ([]*models.Vote, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Vote
	for _, v := range m.votes {
		if v.ProposalID == proposalID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVotes) ListByVoter(ctx context.Context, voterID string) ([]*models.Vote, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Vote
	for _, v := range m.votes {
		if v.VoterID == voterID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVotes) Tally(ctx context.Context, proposalID string) (*models.Tally, error) {
	if m.err != nil {
		return nil, m.err
	}
	t := &models.Tally{}
	for _, v := range m.votes {
		if v.ProposalID != proposalID {
			continue
		}
		switch v.Choice {
		case models.VoteAgree:
			t.Agree++
		case models.VoteDisagree:
			t.Disagree++
		case models.VoteAbstain:
			t.Abstain++
		}
	}
	return t, nil
}

type memProfiles struct {
	seq      int
	profiles []*models.SmartProfile
	err      error
}

func (m *memProfiles) Create(ctx context.Context, p *models.SmartProfile) (*models.SmartProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.profiles {
		if ex.UserID == p.UserID && ex.Name == p.Name {
			return nil, common.ErrorAlreadyExists
		}
		if p.DID != "" && ex.DID == p.DID {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	p.ID = fmt.Sprintf("sp-%d", m.seq)
	p.CreatedAt = time.Now()
	m.profiles = append(m.profiles, p)
	return p, nil
}

func (m *memProfiles) GetByID(ctx context.Context, id string) (*models.SmartProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memProfiles) ListByUser(ctx context.Context, userID string) ([]*models.SmartProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.SmartProfile
	for _, p := range m.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memCredentials struct {
	seq      int
	creds    []*models.VerifiableCredential
	profiles *memProfiles
	err      error
}

func (m *memCredentials) Create(ctx context.Context, c *models.VerifiableCredential) (*models.VerifiableCredential, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	c.ID = fmt.Sprintf("vc-%d", m.seq)
	c.IssuedAt = time.Now()
	m.creds = append(m.creds, c)
	return c, nil
}

func (m *memCredentials) ListByOwner(ctx context.Context, userID string) ([]*models.VerifiableCredential, error) {
	if m.err != nil {
		return nil, m.err
	}
	owned := map[string]bool{}
	if m.profiles != nil {
		for _, p := range m.profiles.profiles {
			if p.UserID == userID {
				owned[p.ID] = true
			}
		}
	}
	var out []*models.VerifiableCredential
	for _, c := range m.creds {
		if owned[c.ProfileID] {
			out = append(out, c)
		}
	}
	return out, nil
}

type memArtifacts struct {
	seq       int
	artifacts []*models.ResearchArtifact
	err       error
}

func (m *memArtifacts) Create(ctx context.Context, a *models.ResearchArtifact) (*models.ResearchArtifact, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ex := range m.artifacts {
		if ex.CID == a.CID {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("a-%d", m.seq)
	a.CreatedAt = time.Now()
	m.artifacts = append(m.artifacts, a)
	return a, nil
}

func (m *memArtifacts) GetByID(ctx context.Context, id string) (*models.ResearchArtifact, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.artifacts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memArtifacts) List(ctx context.Context, worldID string) ([]*models.ResearchArtifact, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.ResearchArtifact
	for _, a := range m.artifacts {
		if worldID == "" || a.WorldID == worldID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memExports struct {
	seq     int
	exports []*models.DataExport
	err     error
}

func (m *memExports) Create(ctx context.Context, e *models.DataExport) (*models.DataExport, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	e.ID = fmt.Sprintf("e-%d", m.seq)
	e.CreatedAt = time.Now()
	m.exports = append(m.exports, e)
	return e, nil
}

func (m *memExports) ListByUser(ctx context.Context, userID string) ([]*models.DataExport, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.DataExport
	for _, e := range m.exports {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memExports) ListPending(ctx context.Context) ([]*models.DataExport, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.DataExport
	for _, e := range m.exports {
		if e.Status == models.ExportPending {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memExports) UpdateStatus(ctx context.Context, id string, from, to models.ExportStatus, cid string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, e := range m.exports {
		if e.ID == id && e.Status == from {
			e.Status = to
			e.CID = cid
			return true, nil
		}
	}
	return false, nil
}

type memRefreshTokens struct {
	tokens map[string]*models.RefreshToken
	err    error
}

func newMemRefreshTokens() *memRefreshTokens {
	return &memRefreshTokens{tokens: map[string]*models.RefreshToken{}}
}

func (m *memRefreshTokens) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.tokens[token] = &models.RefreshToken{
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (m *memRefreshTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.tokens[token]; ok {
		return t, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memRefreshTokens) Delete(ctx context.Context, token string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.tokens, token)
	return nil
}

// fakeRepoManager wires the in-memory fakes behind the repomanager interface.
type fakeRepoManager struct {
	users         *memUsers
	worlds        *memWorlds
	posts         *memPosts
	friendships   *memFriendships
	memberships   *memMemberships
	proposals     *memProposals
	votes         *memVotes
	profiles      *memProfiles
	credentials   *memCredentials
	artifacts     *memArtifacts
	exports       *memExports
	refreshTokens *memRefreshTokens
}

func newFakeRepoManager() *fakeRepoManager {
	profiles := &memProfiles{}
	return &fakeRepoManager{
		users:         newMemUsers(),
		worlds:        newMemWorlds(),
		posts:         &memPosts{},
		friendships:   &memFriendships{},
		memberships:   &memMemberships{facets: map[string][]models.MembershipFacet{}},
		proposals:     &memProposals{},
		votes:         &memVotes{},
		profiles:      profiles,
		credentials:   &memCredentials{profiles: profiles},
		artifacts:     &memArtifacts{},
		exports:       &memExports{},
		refreshTokens: newMemRefreshTokens(),
	}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.users }
func (m *fakeRepoManager) Worlds(db dbx.DBTX) worldsrepo.Repository              { return m.worlds }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository                { return m.posts }
func (m *fakeRepoManager) Friendships(db dbx.DBTX) friendshipsrepo.Repository    { return m.friendships }
func (m *fakeRepoManager) Memberships(db dbx.DBTX) membershipsrepo.Repository    { return m.memberships }
func (m *fakeRepoManager) Proposals(db dbx.DBTX) proposalsrepo.Repository        { return m.proposals }
func (m *fakeRepoManager) Votes(db dbx.DBTX) votesrepo.Repository                { return m.votes }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository          { return m.profiles }
func (m *fakeRepoManager) Credentials(db dbx.DBTX) credentialsrepo.Repository    { return m.credentials }
func (m *fakeRepoManager) Artifacts(db dbx.DBTX) artifactsrepo.Repository        { return m.artifacts }
func (m *fakeRepoManager) Exports(db dbx.DBTX) exportsrepo.Repository            { return m.exports }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.refreshTokens
}
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// fakePinner is an in-memory content-addressed store.
type fakePinner struct {
	blobs  map[string][]byte
	putErr error
	getErr error
}

func newFakePinner() *fakePinner {
	return &fakePinner{blobs: map[string][]byte{}}
}

func (p *fakePinner) Put(ctx context.Context, content []byte) (string, error) {
	if p.putErr != nil {
		return "", p.putErr
	}
	cid := fmt.Sprintf("cid-%d", len(p.blobs)+1)
	for existing, blob := range p.blobs {
		if string(blob) == string(content) {
			return existing, nil
		}
	}
	p.blobs[cid] = content
	return cid, nil
}

func (p *fakePinner) Get(ctx context.Context, cid string) ([]byte, error) {
	if p.getErr != nil {
		return nil, p.getErr
	}
	blob, ok := p.blobs[cid]
	if !ok {
		return nil, fmt.Errorf("unknown cid %q", cid)
	}
	return blob, nil
}

type fakeCompleter struct {
	answer      string
	err         error
	lastContext string
	lastQuery   string
}

func (c *fakeCompleter) Complete(ctx context.Context, userContext, query string) (string, error) {
	c.lastContext = userContext
	c.lastQuery = query
	if c.err != nil {
		return "", c.err
	}
	return c.answer, nil
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)
