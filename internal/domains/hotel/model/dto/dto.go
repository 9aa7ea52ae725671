package dto

import (
	"time"

	"github.com/google/uuid"

	"hotelops/internal/domains/hotel/model"
	"hotelops/shared"
	gDto "hotelops/shared/dto"
	gModel "hotelops/shared/model"
)

type CreateHotelRequest struct {
	Name        string  `json:"name"                  validate:"required,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     *string `json:"address,omitempty"     validate:"omitempty,max=255"`
	Phone       *string `json:"phone,omitempty"       validate:"omitempty,max=30"`
	Email       *string `json:"email,omitempty"       validate:"omitempty,email"`
}

func (c *CreateHotelRequest) ToModel(user string, now time.Time) model.Hotel {
	return model.Hotel{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		IsActive:    true,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type UpdateHotelRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,min=1,max=150"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     *string `db:"address"     json:"address,omitempty"     validate:"omitempty,max=255"`
	Phone       *string `db:"phone"       json:"phone,omitempty"       validate:"omitempty,max=30"`
	Email       *string `db:"email"       json:"email,omitempty"       validate:"omitempty,email"`
	IsActive    *bool   `db:"is_active"   json:"is_active,omitempty"`
}

type HotelResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	IsActive    bool    `json:"is_active"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Address = model.Address
	r.Phone = model.Phone
	r.Email = model.Email
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
