package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	BookingID       string               `json:"booking_id"`
	UserID          *string              `json:"user_id"`
	RoomID          *string              `json:"room_id"`
	FirstName       string               `json:"first_name"`
	LastName        string               `json:"last_name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	RoomType        string               `json:"room_type"`
	CheckIn         string               `json:"check_in"`
	CheckOut        string               `json:"check_out"`
	Guests          int                  `json:"guests"`
	Nights          int                  `json:"nights"`
	Rate            float64              `json:"rate"`
	Total           float64              `json:"total"`
	Status          entity.BookingStatus `json:"status"`
	PaidStatus      entity.PaidStatus    `json:"paid_status"`
	SpecialRequests *string              `json:"special_requests"`
	RefundAmount    *float64             `json:"refund_amount,omitempty"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BookingListItem is the compact row used in admin listings.
type BookingListItem struct {
	ID         string               `json:"id"`
	GuestName  string               `json:"guest_name"`
	Email      string               `json:"email"`
	RoomType   string               `json:"room_type"`
	CheckIn    string               `json:"check_in"`
	CheckOut   string               `json:"check_out"`
	Total      float64              `json:"total"`
	Status     entity.BookingStatus `json:"status"`
	PaidStatus entity.PaidStatus    `json:"paid_status"`
}

type CancelBookingResponse struct {
	Booking      BookingResponse `json:"booking"`
	RefundAmount float64         `json:"refund_amount"`
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		BookingID:       b.Reference,
		UserID:          uuidString(b.UserID),
		RoomID:          uuidString(b.RoomID),
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		Email:           b.Email,
		Phone:           b.Phone,
		RoomType:        b.RoomType,
		CheckIn:         b.CheckIn.Format(utils.DateLayout),
		CheckOut:        b.CheckOut.Format(utils.DateLayout),
		Guests:          b.Guests,
		Nights:          b.Nights,
		Rate:            b.Rate,
		Total:           b.Total,
		Status:          b.Status,
		PaidStatus:      b.PaidStatus,
		SpecialRequests: b.SpecialRequests,
		RefundAmount:    b.RefundAmount,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}

func BookingToListItem(b *entity.Booking) BookingListItem {
	return BookingListItem{
		ID:         b.Reference,
		GuestName:  b.FirstName + " " + b.LastName,
		Email:      b.Email,
		RoomType:   b.RoomType,
		CheckIn:    b.CheckIn.Format(utils.DateLayout),
		CheckOut:   b.CheckOut.Format(utils.DateLayout),
		Total:      b.Total,
		Status:     b.Status,
		PaidStatus: b.PaidStatus,
	}
}

func BookingsToListItems(bookings []*entity.Booking) []BookingListItem {
	out := make([]BookingListItem, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToListItem(b))
	}
	return out
}
