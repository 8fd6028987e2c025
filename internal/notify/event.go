package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
)

var errIncompleteEvent = errors.New("notification event missing required fields")

// event is the JSON body carried over RabbitMQ.
type event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookingID *string   `json:"booking_id,omitempty"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func encodeEvent(n *entity.Notification) ([]byte, error) {
	e := event{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
	}
	if n.BookingID != nil {
		s := n.BookingID.String()
		e.BookingID = &s
	}
	return json.Marshal(e)
}

func decodeEvent(body []byte) (entity.Notification, error) {
	var e event
	if err := json.Unmarshal(body, &e); err != nil {
		return entity.Notification{}, fmt.Errorf("decode notification event: %w", err)
	}
	if e.ID == "" || e.UserID == "" || e.Type == "" || e.Title == "" || e.Message == "" {
		return entity.Notification{}, errIncompleteEvent
	}

	id, err := uuid.Parse(e.ID)
	if err != nil {
		return entity.Notification{}, fmt.Errorf("notification id: %w", err)
	}
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return entity.Notification{}, fmt.Errorf("notification user id: %w", err)
	}

	n := entity.Notification{
		BaseNoDelete: entity.BaseNoDelete{ID: id, CreatedAt: e.CreatedAt, UpdatedAt: e.CreatedAt},
		UserID:       userID,
		Type:         entity.NotificationType(e.Type),
		Title:        e.Title,
		Message:      e.Message,
		Status:       entity.NotificationStatus(e.Status),
	}
	if n.Status == "" {
		n.Status = entity.NotificationUnread
	}
	if e.BookingID != nil {
		if bookingID, err := uuid.Parse(*e.BookingID); err == nil {
			n.BookingID = &bookingID
		}
	}
	return n, nil
}
