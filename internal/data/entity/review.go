package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseNoDelete
	UserID          uuid.UUID `db:"user_id"`
	RoomID          uuid.UUID `db:"room_id"`
	BookingRef      string    `db:"booking_id"`
	Rating          int       `db:"rating"` // 1-5
	Comment         *string   `db:"comment"`
	VerifiedBooking bool      `db:"verified_booking"`

	UserName string `db:"-"`
}
