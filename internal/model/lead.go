package model

import (
	"strings"
	"time"
)

type LeadCategory string

const (
	LeadBooking    LeadCategory = "booking"
	LeadOrder      LeadCategory = "order"
	LeadSell       LeadCategory = "sell"
	LeadCommission LeadCategory = "commission"
)

func (c LeadCategory) String() string { return string(c) }

func (c LeadCategory) Valid() bool {
	switch c {
	case LeadBooking, LeadOrder, LeadSell, LeadCommission:
		return true
	}
	return false
}

// ParseLeadCategory normalizes input. Returns (value, true) if valid.
func ParseLeadCategory(s string) (LeadCategory, bool) {
	c := LeadCategory(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Lead is a persisted customer inquiry. One struct covers all four
// categories; a category only uses its own subset of the optional fields
// and each category is stored in its own table.
type Lead struct {
	ID            string       `db:"id" json:"id"`
	Category      LeadCategory `db:"-" json:"category"`
	CustomerName  string       `db:"customer_name" json:"customer_name"`
	CustomerPhone string       `db:"customer_phone" json:"customer_phone"`
	CustomerEmail *string      `db:"customer_email" json:"customer_email"`
	PhoneCountry  string       `db:"phone_country" json:"phone_country"`

	// booking
	CarID  *string `db:"car_id" json:"car_id,omitempty"`
	Status *string `db:"status" json:"status,omitempty"` // pending|confirmed|cancelled

	// order / sell / commission
	Brand           *string  `db:"brand" json:"brand,omitempty"`
	Model           *string  `db:"model" json:"model,omitempty"`
	Year            *int64   `db:"year" json:"year,omitempty"`
	Mileage         *int64   `db:"mileage" json:"mileage,omitempty"`
	Price           *float64 `db:"price" json:"price,omitempty"`
	Budget          *float64 `db:"budget" json:"budget,omitempty"`
	DeliveryCountry *string  `db:"delivery_country" json:"delivery_country,omitempty"`
	Comments        *string  `db:"comments" json:"comments,omitempty"`
	Description     *string  `db:"description" json:"description,omitempty"`

	Notified  bool      `db:"notified" json:"notified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
