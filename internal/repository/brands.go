package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

type BrandsRepository interface {
	List(ctx context.Context) ([]model.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*model.Brand, error)
}

type BrandsRepositoryImpl struct {
	db *sqlx.DB
}

func NewBrandsRepository(db *sqlx.DB) *BrandsRepositoryImpl {
	return &BrandsRepositoryImpl{db: db}
}

var _ BrandsRepository = (*BrandsRepositoryImpl)(nil)

func (r *BrandsRepositoryImpl) List(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.SelectContext(ctx, &brands, `
		SELECT id, name, slug, logo_url, description, display_order, created_at
		  FROM car_brands
		 ORDER BY display_order
	`)
	return brands, err
}

func (r *BrandsRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*model.Brand, error) {
	var b model.Brand
	err := r.db.GetContext(ctx, &b, `
		SELECT id, name, slug, logo_url, description, display_order, created_at
		  FROM car_brands
		 WHERE slug = ? LIMIT 1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
