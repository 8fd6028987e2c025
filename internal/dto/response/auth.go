package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

// UserSummary is the minimal user shape returned by register and login.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Phone     *string             `json:"phone"`
	Provider  entity.AuthProvider `json:"provider"`
	Role      entity.UserRole     `json:"role"`
	CreatedAt time.Time           `json:"created_at"`
}

type AuthResponse struct {
	User      UserSummary `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type BookingsSummaryResponse struct {
	TotalBookings     int64 `json:"total_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	UpcomingBookings  int64 `json:"upcoming_bookings"`
}

// Helper converters
func UserToSummary(user *entity.User) UserSummary {
	return UserSummary{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Provider:  user.Provider,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{User: UserToSummary(user)}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

func SummaryToResponse(s *entity.BookingSummary) BookingsSummaryResponse {
	return BookingsSummaryResponse{
		TotalBookings:     s.Total,
		CompletedBookings: s.Completed,
		UpcomingBookings:  s.Upcoming,
	}
}
