package request

// CreateBookingRequest mirrors the camelCase payload the booking form posts.
type CreateBookingRequest struct {
	ID              string   `json:"id" validate:"omitempty,max=64"`
	BookingID       string   `json:"bookingId" validate:"omitempty,max=64"`
	FirstName       string   `json:"firstName" validate:"required,max=255"`
	LastName        string   `json:"lastName" validate:"required,max=255"`
	Email           string   `json:"email" validate:"required,email,max=255"`
	Phone           string   `json:"phone" validate:"required,max=20"`
	RoomType        string   `json:"roomType" validate:"required,max=100"`
	CheckIn         string   `json:"checkin" validate:"required,flexdate"`
	CheckOut        string   `json:"checkout" validate:"required,flexdate"`
	Guests          int      `json:"guests" validate:"required,min=1,max=10"`
	Nights          int      `json:"nights" validate:"required,min=1"`
	Rate            *float64 `json:"rate" validate:"required,gte=0"`
	Total           *float64 `json:"total" validate:"required,gte=0"`
	UserEmail       string   `json:"userEmail,omitempty" validate:"omitempty,email"`
	UserID          string   `json:"userId,omitempty" validate:"omitempty,uuid"`
	RoomID          string   `json:"roomId,omitempty" validate:"omitempty,uuid"`
	SpecialRequests *string  `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

// Reference returns the client-supplied booking reference, if any.
func (r CreateBookingRequest) Reference() string {
	if r.ID != "" {
		return r.ID
	}
	return r.BookingID
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected completed"`
}

type BookingListQuery struct {
	Status     string
	PaidStatus string
	Page       int
}
