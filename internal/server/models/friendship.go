package models

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is a directed request from User1 to User2. Accepted edges are
// read as undirected when listing friends. Only the exact (User1, User2)
// direction is deduplicated.
type Friendship struct {
	ID        string
	User1ID   string
	User2ID   string
	Status    FriendshipStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
