package model

import "hotelops/shared/model"

const (
	TableName  = "room_features"
	EntityName = "room_feature"

	FieldID          = "id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldIcon        = "icon"
	FieldIsActive    = "is_active"
)

const (
	CategoryAmenity       = "amenity"
	CategoryFurniture     = "furniture"
	CategoryTechnology    = "technology"
	CategoryAccessibility = "accessibility"
	CategoryView          = "view"
)

type Feature struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	Description *string `db:"description"`
	Icon        *string `db:"icon"`
	IsActive    bool    `db:"is_active"`
	model.Metadata
}
