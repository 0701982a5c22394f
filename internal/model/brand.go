package model

import "time"

// Brand is a car manufacturer shown in the catalog.
type Brand struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	LogoURL      *string   `db:"logo_url" json:"logo_url"`
	Description  *string   `db:"description" json:"description"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
