package model

import (
	"encoding/json"
	"time"
)

type CarStatus string

const (
	CarAvailable CarStatus = "available"
	CarReserved  CarStatus = "reserved"
	CarSold      CarStatus = "sold"
)

func (s CarStatus) String() string { return string(s) }

func (s CarStatus) Valid() bool {
	return s == CarAvailable || s == CarReserved || s == CarSold
}

// Car is a catalog vehicle. Brand and Images are filled by the repository
// on single-car reads; list reads leave them empty.
type Car struct {
	ID             string          `db:"id" json:"id"`
	BrandID        string          `db:"brand_id" json:"brand_id"`
	Model          string          `db:"model" json:"model"`
	Year           int             `db:"year" json:"year"`
	Price          float64         `db:"price" json:"price"`
	Mileage        int64           `db:"mileage" json:"mileage"`
	Color          *string         `db:"color" json:"color"`
	Engine         *string         `db:"engine" json:"engine"`
	Transmission   *string         `db:"transmission" json:"transmission"`
	FuelType       *string         `db:"fuel_type" json:"fuel_type"`
	Description    *string         `db:"description" json:"description"`
	Specifications json.RawMessage `db:"specifications" json:"specifications,omitempty"`
	Status         CarStatus       `db:"status" json:"status"`
	IsNewArrival   bool            `db:"is_new_arrival" json:"is_new_arrival"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`

	Brand  *Brand     `db:"-" json:"brand,omitempty"`
	Images []CarImage `db:"-" json:"images,omitempty"`
}

type CarImage struct {
	ID           string    `db:"id" json:"id"`
	CarID        string    `db:"car_id" json:"car_id"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	IsPrimary    bool      `db:"is_primary" json:"is_primary"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PrimaryImage returns the URL of the primary image, falling back to the
// first one. Empty string when the car has no images.
func (c *Car) PrimaryImage() string {
	for _, img := range c.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(c.Images) > 0 {
		return c.Images[0].ImageURL
	}
	return ""
}
