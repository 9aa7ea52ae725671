package permissions

import (
	"context"
	"slices"

	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

const (
	CapabilitySuperAdmin     = "is_super_admin"
	CapabilityHotelAdmin     = "is_hotel_admin"
	CapabilityStaff          = "is_staff"
	CapabilityGuest          = "is_guest"
	CapabilitySupport        = "is_support"
	CapabilityManageRooms    = "can_manage_rooms"
	CapabilityManageBookings = "can_manage_bookings"
	CapabilityViewReports    = "can_view_reports"
	CapabilityManageStaff    = "can_manage_staff"
)

var roles = []string{
	constant.RoleSuperAdmin,
	constant.RoleHotelAdmin,
	constant.RoleStaff,
	constant.RoleGuest,
	constant.RoleSupport,
}

// ValidRole reports whether role is one of the known profile roles.
func ValidRole(role string) bool {
	return slices.Contains(roles, role)
}

// StaffFlags are the per-staff grants stored alongside a staff profile.
type StaffFlags struct {
	CanManageRooms    bool
	CanManageBookings bool
	CanViewReports    bool
	CanManageStaff    bool
}

// CapabilitySet is the derived, request scoped view of what a principal may do.
type CapabilitySet struct {
	IsSuperAdmin      bool `json:"is_super_admin"`
	IsHotelAdmin      bool `json:"is_hotel_admin"`
	IsStaff           bool `json:"is_staff"`
	IsGuest           bool `json:"is_guest"`
	IsSupport         bool `json:"is_support"`
	CanManageRooms    bool `json:"can_manage_rooms"`
	CanManageBookings bool `json:"can_manage_bookings"`
	CanViewReports    bool `json:"can_view_reports"`
	CanManageStaff    bool `json:"can_manage_staff"`
}

// Resolve derives the capability set for a role and its optional staff record.
// A super admin holds every capability regardless of staff. For staff, a nil
// record grants no action capabilities. Other roles ignore staff entirely.
func Resolve(role string, staff *StaffFlags) CapabilitySet {
	if role == constant.RoleSuperAdmin {
		return CapabilitySet{
			IsSuperAdmin:      true,
			IsHotelAdmin:      true,
			IsStaff:           true,
			IsGuest:           true,
			IsSupport:         true,
			CanManageRooms:    true,
			CanManageBookings: true,
			CanViewReports:    true,
			CanManageStaff:    true,
		}
	}

	set := CapabilitySet{
		IsHotelAdmin: role == constant.RoleHotelAdmin,
		IsStaff:      role == constant.RoleStaff,
		IsGuest:      role == constant.RoleGuest,
		IsSupport:    role == constant.RoleSupport,
	}

	var flags StaffFlags
	if set.IsStaff && staff != nil {
		flags = *staff
	}

	set.CanManageRooms = set.IsHotelAdmin || flags.CanManageRooms
	set.CanManageBookings = set.IsHotelAdmin || flags.CanManageBookings
	set.CanViewReports = set.IsHotelAdmin || flags.CanViewReports
	set.CanManageStaff = set.IsHotelAdmin || flags.CanManageStaff

	return set
}

// Has reports whether the named capability is granted.
func (c CapabilitySet) Has(name string) bool {
	switch name {
	case CapabilitySuperAdmin:
		return c.IsSuperAdmin
	case CapabilityHotelAdmin:
		return c.IsHotelAdmin
	case CapabilityStaff:
		return c.IsStaff
	case CapabilityGuest:
		return c.IsGuest
	case CapabilitySupport:
		return c.IsSupport
	case CapabilityManageRooms:
		return c.CanManageRooms
	case CapabilityManageBookings:
		return c.CanManageBookings
	case CapabilityViewReports:
		return c.CanViewReports
	case CapabilityManageStaff:
		return c.CanManageStaff
	default:
		return false
	}
}

// HasAny reports whether at least one of names is granted. An empty list is always satisfied.
func (c CapabilitySet) HasAny(names ...string) bool {
	if len(names) == 0 {
		return true
	}

	return slices.ContainsFunc(names, c.Has)
}

// Principal is the authenticated caller as seen by services.
type Principal struct {
	UserID       string
	Role         string
	HotelID      string
	Capabilities CapabilitySet
}

// HasHotel reports whether the principal is attached to a hotel.
func (p Principal) HasHotel() bool {
	return p.HotelID != ""
}

// CanAccessHotel reports whether the principal may act on data of hotelID.
func (p Principal) CanAccessHotel(hotelID string) bool {
	if p.Capabilities.IsSuperAdmin {
		return true
	}

	return hotelID != "" && p.HotelID == hotelID
}

// ScopeHotel picks the hotel a request operates on. Super admins may name any hotel or none
// (meaning every hotel); everyone else is pinned to their own hotel.
func (p Principal) ScopeHotel(requested string) (string, error) {
	if p.Capabilities.IsSuperAdmin {
		return requested, nil
	}

	if !p.HasHotel() {
		return "", failure.Forbidden("profile is not assigned to a hotel") // nolint:wrapcheck
	}

	if requested != "" && requested != p.HotelID {
		return "", failure.ResourceRestrictedError
	}

	return p.HotelID, nil
}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyCapabilities, principal)
	ctx = context.WithValue(ctx, constant.ContextKeyHotelID, principal.HotelID)

	return ctx
}

// FromContext returns the principal stored by the access middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(constant.ContextKeyCapabilities).(Principal)

	return principal, ok
}

// Require is FromContext for services; a request without a principal is unauthorized.
func Require(ctx context.Context) (Principal, error) {
	principal, ok := FromContext(ctx)
	if !ok {
		return Principal{}, failure.Unauthorized("missing principal") // nolint:wrapcheck
	}

	return principal, nil
}
