package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/profile/model"
	"hotelops/shared"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/logger"
	gRepo "hotelops/shared/repository"
)

type Profile interface {
	Insert(ctx context.Context, model model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Profile, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	ChangeRole(ctx context.Context, profileID string, req map[string]any, staff *model.StaffPermission) (int64, error)
}

type StaffPermission interface {
	Insert(ctx context.Context, model model.StaffPermission) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StaffPermission, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Upsert(ctx context.Context, model model.StaffPermission) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Profile]
	staff gRepo.Repository[model.StaffPermission]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Profile {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Profile](model.EntityName, model.TableName, model.FieldID, db, otel),
		staff:      gRepo.NewRepository[model.StaffPermission](model.StaffEntityName, model.StaffTableName, model.StaffFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const insertMissingStaffPermissionQuery = `INSERT INTO staff_permissions
	(id, profile_id, can_manage_rooms, can_manage_bookings, can_view_reports, can_manage_staff, created_at, created_by, modified_at, modified_by)
VALUES
	(:id, :profile_id, :can_manage_rooms, :can_manage_bookings, :can_view_reports, :can_manage_staff, :created_at, :created_by, :modified_at, :modified_by)
ON CONFLICT (profile_id) DO NOTHING`

// ChangeRole updates the profile and its staff permission record in one transaction.
// With staff set, the record is created unless one already exists; with staff nil, any record is removed.
// The record is left alone when the profile does not exist.
func (r *repositoryImpl) ChangeRole(ctx context.Context, profileID string, req map[string]any, staff *model.StaffPermission) (affected int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".profile.ChangeRole")
	defer scope.End()

	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		affected, err = r.UpdateAffectedTx(ctx, tx, req, shared.FilterByID(profileID, model.FieldID, model.TableName))
		if err != nil || affected == 0 {
			return err
		}

		if staff == nil {
			return r.staff.DeleteTx(ctx, tx, shared.FilterByID(profileID, model.StaffFieldProfileID, model.StaffTableName))
		}

		scope.SetAttribute(constant.OtelQueryAttributeKey, insertMissingStaffPermissionQuery)

		if _, execErr := tx.NamedExecContext(ctx, insertMissingStaffPermissionQuery, *staff); execErr != nil {
			logger.ErrorWithStack(execErr)

			return fmt.Errorf("failed to create data (%s): %w", model.StaffEntityName, execErr)
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return 0, err //nolint:wrapcheck
	}

	return affected, nil
}

type staffRepositoryImpl struct {
	gRepo.Repository[model.StaffPermission]
	db   *postgres.Connection
	otel otel.Otel
}

func NewStaffPermission(db *postgres.Connection, otel otel.Otel) StaffPermission {
	return &staffRepositoryImpl{
		Repository: gRepo.NewRepository[model.StaffPermission](model.StaffEntityName, model.StaffTableName, model.StaffFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const upsertStaffPermissionQuery = `INSERT INTO staff_permissions
	(id, profile_id, can_manage_rooms, can_manage_bookings, can_view_reports, can_manage_staff, created_at, created_by, modified_at, modified_by)
VALUES
	(:id, :profile_id, :can_manage_rooms, :can_manage_bookings, :can_view_reports, :can_manage_staff, :created_at, :created_by, :modified_at, :modified_by)
ON CONFLICT (profile_id) DO UPDATE SET
	can_manage_rooms = EXCLUDED.can_manage_rooms,
	can_manage_bookings = EXCLUDED.can_manage_bookings,
	can_view_reports = EXCLUDED.can_view_reports,
	can_manage_staff = EXCLUDED.can_manage_staff,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by`

// Upsert writes the flags of a staff profile, creating the record when it does not exist yet.
func (r *staffRepositoryImpl) Upsert(ctx context.Context, mod model.StaffPermission) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".staff_permission.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertStaffPermissionQuery)

	if _, err := r.db.Write.NamedExecContext(ctx, upsertStaffPermissionQuery, mod); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.StaffEntityName, err)
	}

	return nil
}
