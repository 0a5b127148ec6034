package models

import "time"

type MembershipRole string

const (
	RoleMember    MembershipRole = "member"
	RoleModerator MembershipRole = "moderator"
	RoleAdmin     MembershipRole = "admin"
)

// ReputationMax bounds the reputation score; the schema enforces 0..ReputationMax.
const ReputationMax = 1000

// CommunityMembership binds a user to a world with a role and a bounded
// reputation score. At most one membership per (user, world) pair. Role and
// reputation have no public write path.
type CommunityMembership struct {
	ID         string
	UserID     string
	WorldID    string
	Role       MembershipRole
	Reputation int
	JoinedAt   time.Time
	UpdatedAt  time.Time
}
