package models

import "time"

// WorldCategory is the closed set of community categories.
type WorldCategory string

const (
	CategoryScience    WorldCategory = "science"
	CategoryArt        WorldCategory = "art"
	CategoryTechnology WorldCategory = "technology"
	CategorySocial     WorldCategory = "social"
	CategoryOther      WorldCategory = "other"
)

// ValidCategory reports whether c is one of the known world categories.
func ValidCategory(c WorldCategory) bool {
	switch c {
	case CategoryScience, CategoryArt, CategoryTechnology, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// LivingWorld is a named community with a category and owner. ThemeData is an
// open key-value document interpreted by callers, not by the server.
type LivingWorld struct {
	ID          string
	Name        string
	Description string
	Category    WorldCategory
	ThemeData   map[string]any
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
