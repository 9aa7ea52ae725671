package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hotelops/internal/domains/customer/model"
	"hotelops/shared"
	gDto "hotelops/shared/dto"
	gModel "hotelops/shared/model"
)

type CustomerRequest struct {
	Name  string  `json:"name"            validate:"required,max=150"`
	Email string  `json:"email"           validate:"required,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// ToModel normalises the email so the per-hotel uniqueness is case insensitive.
func (c *CustomerRequest) ToModel(hotelID, user string, now time.Time) model.Customer {
	return model.Customer{
		ID:       uuid.NewString(),
		HotelID:  hotelID,
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:    c.Phone,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type CustomerResponse struct {
	ID      string  `json:"id"`
	HotelID string  `json:"hotel_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

type CustomerFilter struct {
	HotelID string
	Name    string
}

func (f CustomerFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.HotelID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    f.HotelID,
			Table:    model.TableName,
		})
	}

	if f.Name != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    f.Name,
			Table:    model.TableName,
		})
	}

	return filter
}
