package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/room/model"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/logger"
	gRepo "hotelops/shared/repository"
	"hotelops/shared/timezone"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	AppendPhoto(ctx context.Context, id, url, user string) error
	RemovePhoto(ctx context.Context, id, url, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const (
	appendPhotoQuery = `UPDATE rooms SET photos = array_append(photos, :url), modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id`
	removePhotoQuery = `UPDATE rooms SET photos = array_remove(photos, :url), modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id AND :url = ANY(photos)`
)

func photoArgs(id, url, user string) map[string]any {
	return map[string]any{
		"id":                     id,
		"url":                    url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

// AppendPhoto adds url in one statement so concurrent uploads do not overwrite each other.
func (r *repositoryImpl) AppendPhoto(ctx context.Context, id, url, user string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.AppendPhoto")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, appendPhotoQuery)

	if _, err := r.db.Write.NamedExecContext(ctx, appendPhotoQuery, photoArgs(id, url, user)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to append photo (%s): %w", model.EntityName, err)
	}

	return nil
}

// RemovePhoto drops url and reports whether the room held it.
func (r *repositoryImpl) RemovePhoto(ctx context.Context, id, url, user string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.RemovePhoto")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, removePhotoQuery)

	result, err := r.db.Write.NamedExecContext(ctx, removePhotoQuery, photoArgs(id, url, user))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to remove photo (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
