package model

import "hotelops/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldIsActive    = "is_active"
)

type Hotel struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Address     *string `db:"address"`
	Phone       *string `db:"phone"`
	Email       *string `db:"email"`
	IsActive    bool    `db:"is_active"`
	model.Metadata
}
