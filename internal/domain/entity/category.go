package entity

import "time"

// Category categoria de produto da organização, opcionalmente hierárquica.
type Category struct {
	ID             string
	OrganizationID string
	ParentID       *string
	Name           string
	Description    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
