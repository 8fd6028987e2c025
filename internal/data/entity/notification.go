package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingConfirmation  NotificationType = "booking_confirmation"
	NotificationPaymentReceived      NotificationType = "payment_received"
	NotificationBookingCancelled     NotificationType = "booking_cancelled"
	NotificationPaymentProofReceived NotificationType = "payment_proof_received"
	NotificationPaymentVerified      NotificationType = "payment_verified"
	NotificationPaymentRejected      NotificationType = "payment_rejected"
	NotificationInfo                 NotificationType = "info"
)

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

type Notification struct {
	BaseNoDelete
	UserID    uuid.UUID          `db:"user_id"`
	BookingID *uuid.UUID         `db:"booking_id"`
	Type      NotificationType   `db:"type"`
	Title     string             `db:"title"`
	Message   string             `db:"message"`
	Status    NotificationStatus `db:"status"`
	ReadAt    *time.Time         `db:"read_at"`
}
