package model

import (
	"hotelops/permissions"
	"hotelops/shared/model"
)

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID        = "id"
	FieldRole      = "role"
	FieldHotelID   = "hotel_id"
	FieldFullName  = "full_name"
	FieldAvatarURL = "avatar_url"
)

const (
	StaffTableName  = "staff_permissions"
	StaffEntityName = "staff_permission"

	StaffFieldID                = "id"
	StaffFieldProfileID         = "profile_id"
	StaffFieldCanManageRooms    = "can_manage_rooms"
	StaffFieldCanManageBookings = "can_manage_bookings"
	StaffFieldCanViewReports    = "can_view_reports"
	StaffFieldCanManageStaff    = "can_manage_staff"
)

// Profile shares its id with the user it belongs to.
type Profile struct {
	ID        string  `db:"id"`
	Role      string  `db:"role"`
	HotelID   *string `db:"hotel_id"`
	FullName  *string `db:"full_name"`
	AvatarURL *string `db:"avatar_url"`
	Email     string  `column:"email" db:"email" table:"users"`
	model.Metadata
}

func (Profile) GetJoinQuery() string {
	return "JOIN users ON users.id = profiles.id"
}

func (p Profile) HotelIDValue() string {
	if p.HotelID == nil {
		return ""
	}

	return *p.HotelID
}

type StaffPermission struct {
	ID                string `db:"id"`
	ProfileID         string `db:"profile_id"`
	CanManageRooms    bool   `db:"can_manage_rooms"`
	CanManageBookings bool   `db:"can_manage_bookings"`
	CanViewReports    bool   `db:"can_view_reports"`
	CanManageStaff    bool   `db:"can_manage_staff"`
	model.Metadata
}

func (s StaffPermission) Flags() permissions.StaffFlags {
	return permissions.StaffFlags{
		CanManageRooms:    s.CanManageRooms,
		CanManageBookings: s.CanManageBookings,
		CanViewReports:    s.CanViewReports,
		CanManageStaff:    s.CanManageStaff,
	}
}
