package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

type ContactsRepository interface {
	Get(ctx context.Context) (*model.ContactInfo, error)
}

type ContactsRepositoryImpl struct {
	db *sqlx.DB
}

func NewContactsRepository(db *sqlx.DB) *ContactsRepositoryImpl {
	return &ContactsRepositoryImpl{db: db}
}

var _ ContactsRepository = (*ContactsRepositoryImpl)(nil)

func (r *ContactsRepositoryImpl) Get(ctx context.Context) (*model.ContactInfo, error) {
	var ci model.ContactInfo
	err := r.db.GetContext(ctx, &ci, `
		SELECT id, phone, whatsapp, telegram, instagram, youtube,
		       address, yandex_map_url, latitude, longitude, updated_at
		  FROM contact_info
		 ORDER BY updated_at DESC
		 LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ci, nil
}
