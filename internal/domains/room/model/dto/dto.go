package dto

import (
	"mime/multipart"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hotelops/internal/domains/room/model"
	"hotelops/shared"
	gDto "hotelops/shared/dto"
	gModel "hotelops/shared/model"
)

type CreateRoomRequest struct {
	HotelID        string   `json:"hotel_id,omitempty"     validate:"omitempty,uuid"`
	Name           string   `json:"name"                   validate:"required,max=100"`
	Type           string   `json:"type"                   validate:"required,oneof=standard deluxe suite executive penthouse"`
	BasePrice      float64  `json:"base_price"             validate:"gte=0"`
	Capacity       int      `json:"capacity"               validate:"required,min=1"`
	MaxCapacity    int      `json:"max_capacity"           validate:"required,min=1,gtefield=Capacity"`
	FloorNumber    *int     `json:"floor_number,omitempty"`
	RoomNumber     string   `json:"room_number"            validate:"required,max=20"`
	SizeSqm        *float64 `json:"size_sqm,omitempty"     validate:"omitempty,gt=0"`
	Status         string   `json:"status,omitempty"       validate:"omitempty,oneof=available occupied maintenance cleaning"`
	Description    *string  `json:"description,omitempty"  validate:"omitempty,max=2000"`
	Features       []string `json:"features,omitempty"     validate:"omitempty,dive,required"`
	SmokingAllowed bool     `json:"smoking_allowed"`
	PetFriendly    bool     `json:"pet_friendly"`
}

func (c *CreateRoomRequest) ToModel(hotelID, user string, now time.Time) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	features := pq.StringArray{}
	if c.Features != nil {
		features = c.Features
	}

	return model.Room{
		ID:             uuid.NewString(),
		HotelID:        hotelID,
		Name:           c.Name,
		Type:           c.Type,
		BasePrice:      c.BasePrice,
		Capacity:       c.Capacity,
		MaxCapacity:    c.MaxCapacity,
		FloorNumber:    c.FloorNumber,
		RoomNumber:     c.RoomNumber,
		SizeSqm:        c.SizeSqm,
		Status:         status,
		Description:    c.Description,
		Photos:         pq.StringArray{},
		Features:       features,
		SmokingAllowed: c.SmokingAllowed,
		PetFriendly:    c.PetFriendly,
		Metadata:       gModel.NewMetadata(user, now),
	}
}

type UpdateRoomRequest struct {
	Name           *string        `db:"name"            json:"name,omitempty"            validate:"omitempty,min=1,max=100"`
	Type           *string        `db:"type"            json:"type,omitempty"            validate:"omitempty,oneof=standard deluxe suite executive penthouse"`
	BasePrice      *float64       `db:"base_price"      json:"base_price,omitempty"      validate:"omitempty,gte=0"`
	Capacity       *int           `db:"capacity"        json:"capacity,omitempty"        validate:"omitempty,min=1"`
	MaxCapacity    *int           `db:"max_capacity"    json:"max_capacity,omitempty"    validate:"omitempty,min=1"`
	FloorNumber    *int           `db:"floor_number"    json:"floor_number,omitempty"`
	RoomNumber     *string        `db:"room_number"     json:"room_number,omitempty"     validate:"omitempty,min=1,max=20"`
	SizeSqm        *float64       `db:"size_sqm"        json:"size_sqm,omitempty"        validate:"omitempty,gt=0"`
	Description    *string        `db:"description"     json:"description,omitempty"     validate:"omitempty,max=2000"`
	Features       pq.StringArray `db:"features"        json:"features,omitempty"        validate:"omitempty,dive,required"`
	SmokingAllowed *bool          `db:"smoking_allowed" json:"smoking_allowed,omitempty"`
	PetFriendly    *bool          `db:"pet_friendly"    json:"pet_friendly,omitempty"`
}

func (u UpdateRoomRequest) IsEmpty() bool {
	return reflect.ValueOf(u).IsZero()
}

// CapacityWithin checks the capacity pair after applying the update to current.
func (u UpdateRoomRequest) CapacityWithin(current model.Room) bool {
	capacity, maxCapacity := current.Capacity, current.MaxCapacity
	if u.Capacity != nil {
		capacity = *u.Capacity
	}

	if u.MaxCapacity != nil {
		maxCapacity = *u.MaxCapacity
	}

	return capacity <= maxCapacity
}

type UpdateRoomStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=available occupied maintenance cleaning"`
}

type UploadPhotoRequest struct {
	Photo     *multipart.FileHeader `json:"photo" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	PhotoFile multipart.File        `json:"-"`
}

type RemovePhotoRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type RoomFilter struct {
	HotelID string
	Status  string
	Type    string
}

// ToFilterGroup skips empty values; an empty HotelID spans every hotel.
func (f RoomFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	fields := [][2]string{
		{model.FieldHotelID, f.HotelID},
		{model.FieldStatus, f.Status},
		{model.FieldType, f.Type},
	}

	for _, field := range fields {
		if field[1] == "" {
			continue
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    field[0],
			Operator: gDto.FilterOperatorEq,
			Value:    field[1],
			Table:    model.TableName,
		})
	}

	return filter
}

type RoomResponse struct {
	ID             string   `json:"id"`
	HotelID        string   `json:"hotel_id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	BasePrice      float64  `json:"base_price"`
	Capacity       int      `json:"capacity"`
	MaxCapacity    int      `json:"max_capacity"`
	FloorNumber    *int     `json:"floor_number,omitempty"`
	RoomNumber     string   `json:"room_number"`
	SizeSqm        *float64 `json:"size_sqm,omitempty"`
	Status         string   `json:"status"`
	Description    *string  `json:"description,omitempty"`
	Photos         []string `json:"photos"`
	Features       []string `json:"features"`
	SmokingAllowed bool     `json:"smoking_allowed"`
	PetFriendly    bool     `json:"pet_friendly"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Type = model.Type
	r.BasePrice = model.BasePrice
	r.Capacity = model.Capacity
	r.MaxCapacity = model.MaxCapacity
	r.FloorNumber = model.FloorNumber
	r.RoomNumber = model.RoomNumber
	r.SizeSqm = model.SizeSqm
	r.Status = model.Status
	r.Description = model.Description
	r.Photos = append([]string{}, model.Photos...)
	r.Features = append([]string{}, model.Features...)
	r.SmokingAllowed = model.SmokingAllowed
	r.PetFriendly = model.PetFriendly
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
