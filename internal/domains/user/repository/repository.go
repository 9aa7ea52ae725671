package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	profileModel "hotelops/internal/domains/profile/model"
	"hotelops/internal/domains/user/model"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	gRepo "hotelops/shared/repository"
)

type User interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Register(ctx context.Context, user model.User, profile profileModel.Profile) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	profiles gRepo.Repository[profileModel.Profile]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		profiles:   gRepo.NewRepository[profileModel.Profile](profileModel.EntityName, profileModel.TableName, profileModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Register stores the credentials and the profile of a new account in one transaction.
func (r *repositoryImpl) Register(ctx context.Context, user model.User, profile profileModel.Profile) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Register")
	defer scope.End()

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, user); err != nil {
			return err
		}

		return r.profiles.InsertTx(ctx, tx, profile)
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}
