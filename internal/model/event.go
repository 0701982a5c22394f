package model

import "time"

// LeadEvent is the analytics payload written to the outbox table on lead
// creation and relayed to Kafka (Debezium outbox SMT).
type LeadEvent struct {
	ID           string       `json:"id"`
	Category     LeadCategory `json:"category"`
	PhoneCountry string       `json:"phone_country"`
	Brand        string       `json:"brand,omitempty"`
	Model        string       `json:"model,omitempty"`
	Price        *float64     `json:"price,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
