package repository

import (
	"context"
	"time"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

// LeadEventRow is one analytics row in ClickHouse.
type LeadEventRow struct {
	ID           string    `db:"id"`
	Category     string    `db:"category"`
	PhoneCountry string    `db:"phone_country"`
	Brand        string    `db:"brand"`
	Model        string    `db:"model"`
	Price        *float64  `db:"price"`
	CreatedAt    time.Time `db:"created_at"`
}

// CategoryCount is the per-category aggregate for the stats endpoint.
type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Total    uint64 `db:"total" json:"total"`
}

// CHLeadsRepository serves analytics reads and the worker's batch writes
// against ClickHouse.
type CHLeadsRepository interface {
	InsertEvents(ctx context.Context, rows []LeadEventRow) error
	Stats(ctx context.Context) ([]CategoryCount, error)
	List(ctx context.Context, category model.LeadCategory, limit, offset int) ([]LeadEventRow, error)
}

type chLeadsRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewCHLeadsRepository(ch *sqlx.DB) CHLeadsRepository {
	return &chLeadsRepository{ch: ch}
}

func (r *chLeadsRepository) InsertEvents(ctx context.Context, rows []LeadEventRow) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := r.ch.NamedExecContext(ctx, `
		INSERT INTO storefront.lead_events
		    (id, category, phone_country, brand, model, price, created_at)
		VALUES
		    (:id, :category, :phone_country, :brand, :model, :price, :created_at)
	`, rows)
	return err
}

func (r *chLeadsRepository) Stats(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.ch.SelectContext(ctx, &out, `
		SELECT category, count() AS total
		FROM storefront.lead_events
		GROUP BY category
		ORDER BY category
	`)
	return out, err
}

func (r *chLeadsRepository) List(ctx context.Context, category model.LeadCategory, limit, offset int) ([]LeadEventRow, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `
		SELECT id, category, phone_country, brand, model, price, created_at
		FROM storefront.lead_events
	`
	args := []any{}
	if category != "" {
		q += " WHERE category = ?"
		args = append(args, category.String())
	}
	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []LeadEventRow
	if err := r.ch.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
