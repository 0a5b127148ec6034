package models

import "time"

type Proposal struct {
	ID          string
	Title       string
	Description string
	WorldID     string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
