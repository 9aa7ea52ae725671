package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/customer/model"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/logger"
	gRepo "hotelops/shared/repository"
)

type Customer interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Upsert(ctx context.Context, model model.Customer) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const upsertCustomerQuery = `INSERT INTO customers
	(id, hotel_id, name, email, phone, created_at, created_by, modified_at, modified_by)
VALUES
	(:id, :hotel_id, :name, :email, :phone, :created_at, :created_by, :modified_at, :modified_by)
ON CONFLICT (hotel_id, email) DO UPDATE SET
	name = EXCLUDED.name,
	phone = COALESCE(EXCLUDED.phone, customers.phone),
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by
RETURNING id`

// Upsert creates the customer or refreshes the existing one with the same email in the hotel,
// returning the stored id.
func (r *repositoryImpl) Upsert(ctx context.Context, mod model.Customer) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".customer.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertCustomerQuery)

	rows, err := r.db.Write.NamedQueryContext(ctx, upsertCustomerQuery, mod)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}
	defer rows.Close()

	var id string
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			scope.TraceError(err)

			return constant.Empty, fmt.Errorf("failed to scan upserted id (%s): %w", model.EntityName, err)
		}
	}

	if err = rows.Err(); err != nil {
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return id, nil
}
