package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

type CarsRepository interface {
	// GetByID loads a car together with its brand and images ordered
	// primary-first. Returns (nil, nil) when the car does not exist.
	GetByID(ctx context.Context, id string) (*model.Car, error)
	ListByBrand(ctx context.Context, brandID string) ([]model.Car, error)
	ListNewArrivals(ctx context.Context, limit int) ([]model.Car, error)
}

type CarsRepositoryImpl struct {
	db *sqlx.DB
}

func NewCarsRepository(db *sqlx.DB) *CarsRepositoryImpl {
	return &CarsRepositoryImpl{db: db}
}

var _ CarsRepository = (*CarsRepositoryImpl)(nil)

const carColumns = `id, brand_id, model, year, price, mileage, color, engine,
	transmission, fuel_type, description, specifications, status, is_new_arrival, created_at`

func (r *CarsRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Car, error) {
	var c model.Car
	err := r.db.GetContext(ctx, &c, `
		SELECT `+carColumns+`
		  FROM cars
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var b model.Brand
	if err := r.db.GetContext(ctx, &b, `
		SELECT id, name, slug, logo_url, description, display_order, created_at
		  FROM car_brands
		 WHERE id = ? LIMIT 1
	`, c.BrandID); err == nil {
		c.Brand = &b
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &c.Images, `
		SELECT id, car_id, image_url, is_primary, display_order, created_at
		  FROM car_images
		 WHERE car_id = ?
		 ORDER BY is_primary DESC, display_order
	`, c.ID); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *CarsRepositoryImpl) ListByBrand(ctx context.Context, brandID string) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.SelectContext(ctx, &cars, `
		SELECT `+carColumns+`
		  FROM cars
		 WHERE brand_id = ? AND status = 'available'
		 ORDER BY created_at DESC
	`, brandID)
	return cars, err
}

func (r *CarsRepositoryImpl) ListNewArrivals(ctx context.Context, limit int) ([]model.Car, error) {
	if limit <= 0 {
		limit = 6
	}
	var cars []model.Car
	err := r.db.SelectContext(ctx, &cars, `
		SELECT `+carColumns+`
		  FROM cars
		 WHERE is_new_arrival = 1 AND status = 'available'
		 ORDER BY created_at DESC
		 LIMIT ?
	`, limit)
	return cars, err
}
