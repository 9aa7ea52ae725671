package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/infras/otel/mocks"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/customer/model"
	"hotelops/internal/domains/customer/repository"
	gModel "hotelops/shared/model"
	"hotelops/shared/timezone"
)

func newRepository(t *testing.T) (repository.Customer, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "postgres"),
		Write: sqlx.NewDb(db, "postgres"),
	}

	return repository.New(conn, mocks.NewOtel()), mock
}

func TestCustomerRepository_Upsert(t *testing.T) {
	customer := model.Customer{
		ID:       "new-id",
		HotelID:  "hotel-1",
		Name:     "Jane Guest",
		Email:    "jane@example.com",
		Metadata: gModel.NewMetadata("staff", timezone.Now()),
	}

	t.Run("returns stored id on conflict", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectQuery(`INSERT INTO customers (.+) ON CONFLICT \(hotel_id, email\) DO UPDATE SET (.+) RETURNING id`).
			WithArgs("new-id", "hotel-1", "Jane Guest", "jane@example.com", nil,
				sqlmock.AnyArg(), "staff", sqlmock.AnyArg(), "staff").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-id"))

		id, err := repo.Upsert(context.Background(), customer)
		require.NoError(t, err)
		assert.Equal(t, "existing-id", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectQuery(`INSERT INTO customers`).WillReturnError(errors.New("boom"))

		_, err := repo.Upsert(context.Background(), customer)
		require.Error(t, err)
	})
}
