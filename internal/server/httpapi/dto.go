package httpapi

import (
	"time"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

// Response DTOs. Sensitive fields (password hashes) never appear here;
// ownership fields are read-only.

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toUserDTOs(us []*models.User) []userDTO {
	out := make([]userDTO, 0, len(us))
	for _, u := range us {
		out = append(out, toUserDTO(u))
	}
	return out
}

type worldDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	ThemeData   map[string]any `json:"theme_data"`
	OwnerID     string         `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toWorldDTO(w *models.LivingWorld) worldDTO {
	themeData := w.ThemeData
	if themeData == nil {
		themeData = map[string]any{}
	}
	return worldDTO{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Category:    string(w.Category),
		ThemeData:   themeData,
		OwnerID:     w.OwnerID,
		CreatedAt:   w.CreatedAt,
	}
}

func toWorldDTOs(ws []*models.LivingWorld) []worldDTO {
	out := make([]worldDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWorldDTO(w))
	}
	return out
}

type membershipDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WorldID    string    `json:"world_id"`
	Role       string    `json:"role"`
	Reputation int       `json:"reputation"`
	JoinedAt   time.Time `json:"joined_at"`
}

func toMembershipDTO(m *models.CommunityMembership) membershipDTO {
	return membershipDTO{
		ID:         m.ID,
		UserID:     m.UserID,
		WorldID:    m.WorldID,
		Role:       string(m.Role),
		Reputation: m.Reputation,
		JoinedAt:   m.JoinedAt,
	}
}

func toMembershipDTOs(ms []*models.CommunityMembership) []membershipDTO {
	out := make([]membershipDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMembershipDTO(m))
	}
	return out
}

type postDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	WorldID   string    `json:"world_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostDTO(p *models.Post) postDTO {
	return postDTO{ID: p.ID, Content: p.Content, AuthorID: p.AuthorID, WorldID: p.WorldID, CreatedAt: p.CreatedAt}
}

func toPostDTOs(ps []*models.Post) []postDTO {
	out := make([]postDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPostDTO(p))
	}
	return out
}

type friendshipDTO struct {
	ID        string    `json:"id"`
	User1ID   string    `json:"user1_id"`
	User2ID   string    `json:"user2_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toFriendshipDTO(f *models.Friendship) friendshipDTO {
	return friendshipDTO{ID: f.ID, User1ID: f.User1ID, User2ID: f.User2ID, Status: string(f.Status), CreatedAt: f.CreatedAt}
}

func toFriendshipDTOs(fs []*models.Friendship) []friendshipDTO {
	out := make([]friendshipDTO, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFriendshipDTO(f))
	}
	return out
}

type proposalDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	WorldID     string    `json:"world_id"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProposalDTO(p *models.Proposal) proposalDTO {
	return proposalDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		WorldID:     p.WorldID,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
	}
}

func toProposalDTOs(ps []*models.Proposal) []proposalDTO {
	out := make([]proposalDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProposalDTO(p))
	}
	return out
}

type voteDTO struct {
	ID         string    `json:"id"`
	ProposalID string    `json:"proposal_id"`
	VoterID    string    `json:"voter_id"`
	Choice     string    `json:"choice"`
	CreatedAt  time.Time `json:"created_at"`
}

func toVoteDTO(v *models.Vote) voteDTO {
	return voteDTO{ID: v.ID, ProposalID: v.ProposalID, VoterID: v.VoterID, Choice: string(v.Choice), CreatedAt: v.CreatedAt}
}

func toVoteDTOs(vs []*models.Vote) []voteDTO {
	out := make([]voteDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVoteDTO(v))
	}
	return out
}

type profileDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	DID       string    `json:"did,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfileDTO(p *models.SmartProfile) profileDTO {
	return profileDTO{ID: p.ID, UserID: p.UserID, Name: p.Name, DID: p.DID, CreatedAt: p.CreatedAt}
}

func toProfileDTOs(ps []*models.SmartProfile) []profileDTO {
	out := make([]profileDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProfileDTO(p))
	}
	return out
}

type credentialDTO struct {
	ID        string         `json:"id"`
	ProfileID string         `json:"profile_id"`
	Payload   map[string]any `json:"payload"`
	Issuer    string         `json:"issuer"`
	IssuedAt  time.Time      `json:"issued_at"`
}

func toCredentialDTO(c *models.VerifiableCredential) credentialDTO {
	return credentialDTO{ID: c.ID, ProfileID: c.ProfileID, Payload: c.Payload, Issuer: c.Issuer, IssuedAt: c.IssuedAt}
}

func toCredentialDTOs(cs []*models.VerifiableCredential) []credentialDTO {
	out := make([]credentialDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCredentialDTO(c))
	}
	return out
}

type artifactDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract"`
	Type      string    `json:"artifact_type"`
	CID       string    `json:"cid"`
	AuthorID  string    `json:"author_id"`
	WorldID   string    `json:"world_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toArtifactDTO(a *models.ResearchArtifact) artifactDTO {
	return artifactDTO{
		ID:        a.ID,
		Title:     a.Title,
		Abstract:  a.Abstract,
		Type:      string(a.Type),
		CID:       a.CID,
		AuthorID:  a.AuthorID,
		WorldID:   a.WorldID,
		CreatedAt: a.CreatedAt,
	}
}

func toArtifactDTOs(as []*models.ResearchArtifact) []artifactDTO {
	out := make([]artifactDTO, 0, len(as))
	for _, a := range as {
		out = append(out, toArtifactDTO(a))
	}
	return out
}

type exportDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CID       string    `json:"cid,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toExportDTO(e *models.DataExport) exportDTO {
	return exportDTO{ID: e.ID, UserID: e.UserID, Status: string(e.Status), CID: e.CID, CreatedAt: e.CreatedAt}
}

func toExportDTOs(es []*models.DataExport) []exportDTO {
	out := make([]exportDTO, 0, len(es))
	for _, e := range es {
		out = append(out, toExportDTO(e))
	}
	return out
}

type facetDTO struct {
	WorldName        string    `json:"world_name"`
	WorldDescription string    `json:"world_description"`
	Role             string    `json:"role"`
	Reputation       int       `json:"reputation"`
	JoinedAt         time.Time `json:"joined_at"`
}

type facetedProfileDTO struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	Memberships []facetDTO `json:"community_memberships"`
}

func toFacetedProfileDTO(p *models.FacetedProfile) facetedProfileDTO {
	facets := make([]facetDTO, 0, len(p.Memberships))
	for _, m := range p.Memberships {
		facets = append(facets, facetDTO{
			WorldName:        m.WorldName,
			WorldDescription: m.WorldDescription,
			Role:             string(m.Role),
			Reputation:       m.Reputation,
			JoinedAt:         m.JoinedAt,
		})
	}
	return facetedProfileDTO{
		ID:          p.UserID,
		Username:    p.Username,
		Email:       p.Email,
		CreatedAt:   p.CreatedAt,
		Memberships: facets,
	}
}
