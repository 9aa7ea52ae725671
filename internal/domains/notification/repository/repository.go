package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/notification/model"
	gDto "hotelops/shared/dto"
	gRepo "hotelops/shared/repository"
)

type Template interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Template, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Template]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Template {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Template](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
