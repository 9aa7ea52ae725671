package model

import (
	"github.com/lib/pq"

	"hotelops/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldHotelID        = "hotel_id"
	FieldName           = "name"
	FieldType           = "type"
	FieldBasePrice      = "base_price"
	FieldCapacity       = "capacity"
	FieldMaxCapacity    = "max_capacity"
	FieldFloorNumber    = "floor_number"
	FieldRoomNumber     = "room_number"
	FieldSizeSqm        = "size_sqm"
	FieldStatus         = "status"
	FieldDescription    = "description"
	FieldPhotos         = "photos"
	FieldFeatures       = "features"
	FieldSmokingAllowed = "smoking_allowed"
	FieldPetFriendly    = "pet_friendly"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
	StatusCleaning    = "cleaning"
)

const (
	TypeStandard  = "standard"
	TypeDeluxe    = "deluxe"
	TypeSuite     = "suite"
	TypeExecutive = "executive"
	TypePenthouse = "penthouse"
)

// PhotoDirectory is the object key prefix for a room's photos.
func PhotoDirectory(roomID string) string {
	return "rooms/" + roomID
}

type Room struct {
	ID             string         `db:"id"`
	HotelID        string         `db:"hotel_id"`
	Name           string         `db:"name"`
	Type           string         `db:"type"`
	BasePrice      float64        `db:"base_price"`
	Capacity       int            `db:"capacity"`
	MaxCapacity    int            `db:"max_capacity"`
	FloorNumber    *int           `db:"floor_number"`
	RoomNumber     string         `db:"room_number"`
	SizeSqm        *float64       `db:"size_sqm"`
	Status         string         `db:"status"`
	Description    *string        `db:"description"`
	Photos         pq.StringArray `db:"photos"`
	Features       pq.StringArray `db:"features"`
	SmokingAllowed bool           `db:"smoking_allowed"`
	PetFriendly    bool           `db:"pet_friendly"`
	model.Metadata
}
