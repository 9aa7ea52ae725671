package dto

import (
	"hotelops/internal/domains/profile/model"
	"hotelops/permissions"
	"hotelops/shared"
	gDto "hotelops/shared/dto"
)

type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	HotelID   *string `json:"hotel_id,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(model model.Profile) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.HotelID = model.HotelID
	r.FullName = model.FullName
	r.AvatarURL = model.AvatarURL
	r.Metadata.FromModel(model.Metadata)
}

type MeResponse struct {
	ProfileResponse
	Capabilities permissions.CapabilitySet `json:"capabilities"`
}

type GetProfilesResponse struct {
	Profiles  []ProfileResponse `json:"profiles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProfilesResponse) FromModels(models []model.Profile, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Profiles = make([]ProfileResponse, len(models))
	for i, mod := range models {
		r.Profiles[i].FromModel(mod)
	}
}

type UpdateRoleRequest struct {
	Role string `db:"role" json:"role" validate:"required,role"`
}

type AssignHotelRequest struct {
	HotelID string `db:"hotel_id" json:"hotel_id" validate:"required,uuid"`
}

type StaffPermissionsRequest struct {
	CanManageRooms    bool `json:"can_manage_rooms"`
	CanManageBookings bool `json:"can_manage_bookings"`
	CanViewReports    bool `json:"can_view_reports"`
	CanManageStaff    bool `json:"can_manage_staff"`
}

type StaffPermissionsResponse struct {
	ProfileID         string `json:"profile_id"`
	CanManageRooms    bool   `json:"can_manage_rooms"`
	CanManageBookings bool   `json:"can_manage_bookings"`
	CanViewReports    bool   `json:"can_view_reports"`
	CanManageStaff    bool   `json:"can_manage_staff"`
}

func (r *StaffPermissionsResponse) FromModel(model model.StaffPermission) {
	r.ProfileID = model.ProfileID
	r.CanManageRooms = model.CanManageRooms
	r.CanManageBookings = model.CanManageBookings
	r.CanViewReports = model.CanViewReports
	r.CanManageStaff = model.CanManageStaff
}

// PrincipalInputs is what the access middleware caches per user; capabilities are derived on read.
type PrincipalInputs struct {
	Found   bool                    `json:"found"`
	Role    string                  `json:"role"`
	HotelID string                  `json:"hotel_id"`
	Staff   *permissions.StaffFlags `json:"staff,omitempty"`
}
