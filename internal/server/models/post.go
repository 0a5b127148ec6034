package models

import "time"

// Post is a piece of content scoped to exactly one world and one author.
type Post struct {
	ID        string
	Content   string
	AuthorID  string
	WorldID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
