package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/infras/otel/mocks"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/booking/repository"
)

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
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

func TestBookingRepository_HasOverlap(t *testing.T) {
	checkIn := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    bool
		wantErr bool
	}{
		{name: "overlapping booking", rows: sqlmock.NewRows([]string{"exists"}).AddRow(true), want: true},
		{name: "free room", rows: sqlmock.NewRows([]string{"exists"}).AddRow(false), want: false},
		{name: "database failure", err: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)

			query := mock.ExpectPrepare(`SELECT EXISTS \(\s*SELECT 1 FROM room_reservations`).
				ExpectQuery().
				WithArgs("room-1", "2025-06-13", "2025-06-10")

			if tt.err != nil {
				query.WillReturnError(tt.err)
			} else {
				query.WillReturnRows(tt.rows)
			}

			got, err := repo.HasOverlap(context.Background(), "room-1", checkIn, checkOut)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
