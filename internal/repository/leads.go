package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

// LeadsRepository persists lead records. Each category has its own table
// but shares one entry point keyed by the category tag.
type LeadsRepository interface {
	// Insert writes the lead into its category table. If tx is nil an
	// internal transaction is opened and committed.
	Insert(ctx context.Context, tx *sqlx.Tx, lead *model.Lead) error
	// MarkNotified flips the notified flag after a successful Telegram send.
	MarkNotified(ctx context.Context, category model.LeadCategory, id string) error
}

type LeadsRepositoryImpl struct {
	db *sqlx.DB
}

func NewLeadsRepository(db *sqlx.DB) *LeadsRepositoryImpl {
	return &LeadsRepositoryImpl{db: db}
}

var _ LeadsRepository = (*LeadsRepositoryImpl)(nil)

func leadTable(c model.LeadCategory) (string, error) {
	switch c {
	case model.LeadBooking:
		return "bookings", nil
	case model.LeadOrder:
		return "order_requests", nil
	case model.LeadSell:
		return "sell_requests", nil
	case model.LeadCommission:
		return "commission_requests", nil
	}
	return "", fmt.Errorf("unknown lead category %q", c)
}

func (r *LeadsRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}
	t, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}

func (r *LeadsRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, lead *model.Lead) error {
	now := time.Now().UTC().Truncate(time.Second)
	lead.CreatedAt = now
	lead.Notified = false

	var q string
	var args []any
	switch lead.Category {
	case model.LeadBooking:
		q = `
			INSERT INTO bookings
			    (id, car_id, customer_name, customer_phone, phone_country, status, notified, created_at)
			VALUES
			    (?,  ?,      ?,             ?,              ?,             'pending', 0,    ?)
		`
		args = []any{lead.ID, lead.CarID, lead.CustomerName, lead.CustomerPhone, lead.PhoneCountry, now}
		pending := "pending"
		lead.Status = &pending
	case model.LeadOrder:
		q = `
			INSERT INTO order_requests
			    (id, customer_name, customer_phone, customer_email, phone_country,
			     brand, model, budget, delivery_country, comments, notified, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		`
		args = []any{lead.ID, lead.CustomerName, lead.CustomerPhone, lead.CustomerEmail, lead.PhoneCountry,
			lead.Brand, lead.Model, lead.Budget, lead.DeliveryCountry, lead.Comments, now}
	case model.LeadSell:
		q = `
			INSERT INTO sell_requests
			    (id, customer_name, customer_phone, customer_email, phone_country,
			     brand, model, year, mileage, price, description, notified, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		`
		args = []any{lead.ID, lead.CustomerName, lead.CustomerPhone, lead.CustomerEmail, lead.PhoneCountry,
			lead.Brand, lead.Model, lead.Year, lead.Mileage, lead.Price, lead.Description, now}
	case model.LeadCommission:
		q = `
			INSERT INTO commission_requests
			    (id, customer_name, customer_phone, customer_email, phone_country,
			     brand, model, year, price, notified, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		`
		args = []any{lead.ID, lead.CustomerName, lead.CustomerPhone, lead.CustomerEmail, lead.PhoneCountry,
			lead.Brand, lead.Model, lead.Year, lead.Price, now}
	default:
		return fmt.Errorf("unknown lead category %q", lead.Category)
	}

	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, args...)
		return err
	})
}

func (r *LeadsRepositoryImpl) MarkNotified(ctx context.Context, category model.LeadCategory, id string) error {
	table, err := leadTable(category)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET notified = 1 WHERE id = ?`, table), id)
	return err
}
