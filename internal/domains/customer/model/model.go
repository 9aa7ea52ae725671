package model

import "hotelops/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID      = "id"
	FieldHotelID = "hotel_id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
)

// Customer is unique per hotel by email.
type Customer struct {
	ID      string  `db:"id"`
	HotelID string  `db:"hotel_id"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   *string `db:"phone"`
	model.Metadata
}
