package dto

import (
	"time"

	"github.com/google/uuid"

	"hotelops/internal/domains/feature/model"
	gModel "hotelops/shared/model"
)

type CreateFeatureRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	Category    string  `json:"category"              validate:"required,oneof=amenity furniture technology accessibility view"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `json:"icon,omitempty"        validate:"omitempty,max=50"`
}

func (c *CreateFeatureRequest) ToModel(user string, now time.Time) model.Feature {
	return model.Feature{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Icon:        c.Icon,
		IsActive:    true,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type UpdateFeatureRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Category    *string `db:"category"    json:"category,omitempty"    validate:"omitempty,oneof=amenity furniture technology accessibility view"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `db:"icon"        json:"icon,omitempty"        validate:"omitempty,max=50"`
	IsActive    *bool   `db:"is_active"   json:"is_active,omitempty"`
}

type FeatureResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func (r *FeatureResponse) FromModel(model model.Feature) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Description = model.Description
	r.Icon = model.Icon
	r.IsActive = model.IsActive
}

func FromModels(models []model.Feature) []FeatureResponse {
	res := make([]FeatureResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
