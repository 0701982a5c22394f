package repository

import (
	"context"
	"time"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

type ReviewsRepository interface {
	// Insert stores a new review; reviews always start unapproved.
	Insert(ctx context.Context, rv *model.Review) error
	ListApproved(ctx context.Context) ([]model.Review, error)
}

type ReviewsRepositoryImpl struct {
	db *sqlx.DB
}

func NewReviewsRepository(db *sqlx.DB) *ReviewsRepositoryImpl {
	return &ReviewsRepositoryImpl{db: db}
}

var _ ReviewsRepository = (*ReviewsRepositoryImpl)(nil)

func (r *ReviewsRepositoryImpl) Insert(ctx context.Context, rv *model.Review) error {
	rv.Approved = false
	rv.CreatedAt = time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, customer_name, rating, message, approved, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, rv.ID, rv.CustomerName, rv.Rating, rv.Message, rv.CreatedAt)
	return err
}

func (r *ReviewsRepositoryImpl) ListApproved(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT id, customer_name, rating, message, approved, created_at
		  FROM reviews
		 WHERE approved = 1
		 ORDER BY created_at DESC
	`)
	return reviews, err
}
