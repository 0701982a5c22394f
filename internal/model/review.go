package model

import "time"

// Review is a customer review. New reviews start unapproved and only
// approved ones are listed publicly.
type Review struct {
	ID           string    `db:"id" json:"id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Rating       int       `db:"rating" json:"rating"`
	Message      string    `db:"message" json:"message"`
	Approved     bool      `db:"approved" json:"approved"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
