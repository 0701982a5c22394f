package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avtoelite/storefront/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "mysql"), mock
}

func TestLeadsInsertSellNullNumerics(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewLeadsRepository(dbx)

	brand := "BMW"
	mdl := "M5"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sell_requests").
		WithArgs("01TESTID", "Иван", "+7 (999) 123-45-67", nil, "RU",
			"BMW", "M5", nil, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	lead := &model.Lead{
		ID:            "01TESTID",
		Category:      model.LeadSell,
		CustomerName:  "Иван",
		CustomerPhone: "+7 (999) 123-45-67",
		PhoneCountry:  "RU",
		Brand:         &brand,
		Model:         &mdl,
		// Year, Mileage, Price, Description left nil: stored as NULL
	}

	err := repo.Insert(context.Background(), nil, lead)
	require.NoError(t, err)
	assert.False(t, lead.Notified)
	assert.False(t, lead.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsInsertBookingSetsPendingStatus(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewLeadsRepository(dbx)

	carID := "01CAR"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("01TESTID", "01CAR", "Анна", "+375 (29) 123-45-67", "BY", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	lead := &model.Lead{
		ID:            "01TESTID",
		Category:      model.LeadBooking,
		CustomerName:  "Анна",
		CustomerPhone: "+375 (29) 123-45-67",
		PhoneCountry:  "BY",
		CarID:         &carID,
	}

	err := repo.Insert(context.Background(), nil, lead)
	require.NoError(t, err)
	require.NotNil(t, lead.Status)
	assert.Equal(t, "pending", *lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsInsertUnknownCategory(t *testing.T) {
	dbx, _ := newMockDB(t)
	repo := NewLeadsRepository(dbx)

	err := repo.Insert(context.Background(), nil, &model.Lead{Category: "spam"})
	assert.Error(t, err)
}

func TestMarkNotified(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewLeadsRepository(dbx)

	mock.ExpectExec("UPDATE order_requests SET notified = 1").
		WithArgs("01TESTID").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkNotified(context.Background(), model.LeadOrder, "01TESTID")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
