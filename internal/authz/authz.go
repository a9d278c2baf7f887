// Package authz derives permissions from an actor's role. It holds no state.
package authz

import (
	apperrors "wardrobe/pkg/errors"
	"wardrobe/pkg/model"
)

// Satisfies reports whether role meets required: admin satisfies both roles,
// user satisfies only user.
func Satisfies(role, required model.Role) bool {
	switch required {
	case model.RoleUser:
		return role == model.RoleUser || role == model.RoleAdmin
	case model.RoleAdmin:
		return role == model.RoleAdmin
	default:
		return false
	}
}

func Authenticated(actor *model.Actor) error {
	if actor == nil {
		return apperrors.Unauthorized("Not authenticated")
	}
	return nil
}

func Require(actor *model.Actor, required model.Role) error {
	if err := Authenticated(actor); err != nil {
		return err
	}
	if !Satisfies(actor.Role, required) {
		return apperrors.Forbidden("Admin access required")
	}
	return nil
}

// CanReadBooking: owners read their own bookings, admins read all.
func CanReadBooking(actor *model.Actor, booking *model.Booking) bool {
	if actor == nil || booking == nil {
		return false
	}
	return actor.IsAdmin() || booking.UserEmail == actor.Email
}
