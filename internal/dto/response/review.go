package response

import (
	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type ReviewResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	RoomID          string  `json:"room_id"`
	BookingID       string  `json:"booking_id"`
	UserName        string  `json:"user_name"`
	Rating          int     `json:"rating"`
	Comment         *string `json:"comment"`
	VerifiedBooking bool    `json:"verified_booking"`
	CreatedAt       string  `json:"created_at"`
}

// Helper converters
func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		RoomID:          r.RoomID.String(),
		BookingID:       r.BookingRef,
		UserName:        r.UserName,
		Rating:          r.Rating,
		Comment:         r.Comment,
		VerifiedBooking: r.VerifiedBooking,
		CreatedAt:       r.CreatedAt.Format(utils.DateLayout),
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToResponse(r))
	}
	return out
}
