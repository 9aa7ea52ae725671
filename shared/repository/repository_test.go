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
	"hotelops/shared"
	"hotelops/shared/dto"
	"hotelops/shared/repository"
)

type testRoom struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Status string `db:"status"`
}

func newRepository(t *testing.T) (repository.Repository[testRoom], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "postgres"),
		Write: sqlx.NewDb(db, "postgres"),
	}

	return repository.NewRepository[testRoom]("room", "rooms", "id", conn, mocks.NewOtel()), mock
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`INSERT INTO rooms \(id, name, status\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("r-1", "Ocean View", "available").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), testRoom{ID: "r-1", Name: "Ocean View", Status: "available"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(`SELECT rooms.id, rooms.name, rooms.status FROM rooms`).
			ExpectQuery().
			WithArgs("r-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).AddRow("r-1", "Ocean View", "available"))

		room, err := repo.Get(context.Background(), shared.FilterByID("r-1", "id", "rooms"))
		require.NoError(t, err)
		assert.Equal(t, "Ocean View", room.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row returns zero value", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(`SELECT (.+) FROM rooms`).
			ExpectQuery().
			WithArgs("r-2").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))

		room, err := repo.Get(context.Background(), shared.FilterByID("r-2", "id", "rooms"))
		require.NoError(t, err)
		assert.Empty(t, room.ID)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(`SELECT (.+) FROM rooms`).
			ExpectQuery().
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(context.Background(), shared.FilterByID("r-3", "id", "rooms"))
		assert.Error(t, err)
	})
}

func TestRepository_Exist(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM rooms`).
		ExpectQuery().
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), shared.FilterByID("r-1", "id", "rooms"))
	require.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT COUNT\(rooms.id\) FROM rooms`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT (.+) FROM rooms (.+) ORDER BY name ASC LIMIT \$2 OFFSET \$3`).
		ExpectQuery().
		WithArgs("available", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow("r-1", "A", "available").
			AddRow("r-2", "B", "available"))

	rooms, err := repo.GetAll(
		context.Background(),
		dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc},
		dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq}}},
	)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestRepository_UpdateAffected(t *testing.T) {
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq},
			dto.Filter{ArgName: "current_status", Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
		},
	}

	t.Run("row matched", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`UPDATE rooms SET status = \$1\s+WHERE \(id = \$2 AND status = \$3\)`).
			WithArgs("maintenance", "r-1", "available").
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.UpdateAffected(context.Background(), map[string]any{"status": "maintenance"}, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("stale state", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`UPDATE rooms SET status = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.UpdateAffected(context.Background(), map[string]any{"status": "maintenance"}, filter)
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("filter required", func(t *testing.T) {
		repo, _ := newRepository(t)

		err := repo.Update(context.Background(), map[string]any{"status": "maintenance"}, dto.FilterGroup{})
		assert.Error(t, err)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`DELETE FROM rooms\s+WHERE`).
		WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), shared.FilterByID("r-1", "id", "rooms"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transaction(t *testing.T) {
	t.Run("commits when every statement succeeds", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO rooms`).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO rooms`).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Transaction(context.Background(), func(tx *sqlx.Tx) error {
			if err := repo.InsertTx(context.Background(), tx, testRoom{ID: "r-1"}); err != nil {
				return err
			}

			return repo.InsertTx(context.Background(), tx, testRoom{ID: "r-2"})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO rooms`).WillReturnError(errors.New("duplicate key"))
		mock.ExpectRollback()

		err := repo.Transaction(context.Background(), func(tx *sqlx.Tx) error {
			return repo.InsertTx(context.Background(), tx, testRoom{ID: "r-1"})
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		called := false
		err := repo.Transaction(context.Background(), func(*sqlx.Tx) error {
			called = true

			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
	})
}
