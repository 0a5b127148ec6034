package models

import "time"

// SmartProfile is a named presentation facet of a user. DID is an opaque
// decentralized identifier issued externally; it is unique when present.
type SmartProfile struct {
	ID        string
	UserID    string
	Name      string
	DID       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerifiableCredential is an opaque structured claim attached to a profile.
// The payload and issuer are stored as-is; trust verification is delegated
// to an external collaborator.
type VerifiableCredential struct {
	ID        string
	ProfileID string
	Payload   map[string]any
	Issuer    string
	IssuedAt  time.Time
}

// MembershipFacet is one row of the faceted profile view: the user as seen
// through a single community membership.
type MembershipFacet struct {
	WorldName        string
	WorldDescription string
	Role             MembershipRole
	Reputation       int
	JoinedAt         time.Time
}

// FacetedProfile aggregates a user's identity across their communities.
type FacetedProfile struct {
	UserID      string
	Username    string
	Email       string
	CreatedAt   time.Time
	Memberships []MembershipFacet
}
