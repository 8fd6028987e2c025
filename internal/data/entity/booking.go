package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusRejected  BookingStatus = "rejected"
)

type PaidStatus string

const (
	PaidStatusUnpaid   PaidStatus = "unpaid"
	PaidStatusPaid     PaidStatus = "paid"
	PaidStatusRefunded PaidStatus = "refunded"
)

// Booking is addressed externally by Reference (the booking_id column).
type Booking struct {
	BaseNoDelete
	Reference       string        `db:"booking_id"`
	UserID          *uuid.UUID    `db:"user_id"`
	RoomID          *uuid.UUID    `db:"room_id"`
	FirstName       string        `db:"first_name"`
	LastName        string        `db:"last_name"`
	Email           string        `db:"email"`
	Phone           string        `db:"phone"`
	RoomType        string        `db:"room_type"`
	CheckIn         time.Time     `db:"check_in"`
	CheckOut        time.Time     `db:"check_out"`
	Guests          int           `db:"guests"`
	Nights          int           `db:"nights"`
	Rate            float64       `db:"rate"`
	Total           float64       `db:"total"`
	Status          BookingStatus `db:"status"`
	PaidStatus      PaidStatus    `db:"paid_status"`
	SpecialRequests *string       `db:"special_requests"`
	RefundAmount    *float64      `db:"refund_amount"`
	CancelledAt     *time.Time    `db:"cancelled_at"`
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID != nil && *b.UserID == userID
}

// IsClosed reports whether the booking can no longer change status.
func (b *Booking) IsClosed() bool {
	switch b.Status {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusRejected:
		return true
	}
	return false
}

// BookingFilter narrows admin listings. Empty fields match everything.
type BookingFilter struct {
	Status     string
	PaidStatus string
}

// BookingSummary counts a user's bookings for the profile page.
type BookingSummary struct {
	Total     int64
	Completed int64
	Upcoming  int64
}
