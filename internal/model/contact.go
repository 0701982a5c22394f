package model

import "time"

// ContactInfo backs the contacts page. Single row, edited out of band.
type ContactInfo struct {
	ID           string    `db:"id" json:"id"`
	Phone        *string   `db:"phone" json:"phone"`
	Whatsapp     *string   `db:"whatsapp" json:"whatsapp"`
	Telegram     *string   `db:"telegram" json:"telegram"`
	Instagram    *string   `db:"instagram" json:"instagram"`
	Youtube      *string   `db:"youtube" json:"youtube"`
	Address      *string   `db:"address" json:"address"`
	YandexMapURL *string   `db:"yandex_map_url" json:"yandex_map_url"`
	Latitude     *float64  `db:"latitude" json:"latitude"`
	Longitude    *float64  `db:"longitude" json:"longitude"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
