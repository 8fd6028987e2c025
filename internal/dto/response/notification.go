package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                    `json:"id"`
	UserID    string                    `json:"user_id"`
	BookingID *string                   `json:"booking_id"`
	Type      entity.NotificationType   `json:"type"`
	Title     string                    `json:"title"`
	Message   string                    `json:"message"`
	Status    entity.NotificationStatus `json:"status"`
	ReadAt    *time.Time                `json:"read_at"`
	CreatedAt time.Time                 `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		BookingID: uuidString(n.BookingID),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Status:    n.Status,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func NotificationsToResponse(list []*entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationToResponse(n))
	}
	return out
}
