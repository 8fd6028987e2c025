package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Notifier stores a notification for the booking owner and pushes it to
// their live streams. Bookings without an owner are skipped.
type Notifier interface {
	NotifyBookingConfirmation(ctx context.Context, booking *entity.Booking) error
	NotifyPaymentReceived(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error
	NotifyBookingCancelled(ctx context.Context, booking *entity.Booking, refund float64) error
	NotifyPaymentProofReceived(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error
	NotifyPaymentVerified(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error
	NotifyPaymentRejected(ctx context.Context, booking *entity.Booking, comment *string) error
}

type notifier struct {
	repo       repository.NotificationRepository
	dispatcher notify.Dispatcher
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

func NewNotifier(repo repository.NotificationRepository, dispatcher notify.Dispatcher, m *metrics.Metrics, log *zap.Logger) Notifier {
	return &notifier{
		repo:       repo,
		dispatcher: dispatcher,
		metrics:    m,
		log:        log.With(zap.String("service", "notifier")),
		now:        time.Now,
	}
}

func (n *notifier) NotifyBookingConfirmation(ctx context.Context, booking *entity.Booking) error {
	msg := fmt.Sprintf("Your booking for %s from %s to %s has been confirmed. Booking ID: %s",
		booking.RoomType,
		booking.CheckIn.Format(utils.DateLayout),
		booking.CheckOut.Format(utils.DateLayout),
		booking.Reference,
	)
	return n.send(ctx, booking, entity.NotificationBookingConfirmation, "Booking Confirmed", msg)
}

func (n *notifier) NotifyPaymentReceived(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error {
	msg := fmt.Sprintf("Payment of $%s has been received for your booking. Transaction ID: %s",
		utils.FormatMoney(payment.Amount), payment.TransactionID)
	return n.send(ctx, booking, entity.NotificationPaymentReceived, "Payment Received", msg)
}

func (n *notifier) NotifyBookingCancelled(ctx context.Context, booking *entity.Booking, refund float64) error {
	msg := fmt.Sprintf("Your booking for %s has been cancelled.", booking.RoomType)
	if refund > 0 {
		msg += fmt.Sprintf(" A refund of $%s has been processed.", utils.FormatMoney(refund))
	}
	return n.send(ctx, booking, entity.NotificationBookingCancelled, "Booking Cancelled", msg)
}

func (n *notifier) NotifyPaymentProofReceived(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error {
	msg := fmt.Sprintf("We've received your payment proof for $%s. It's being verified and you'll be notified once approved.",
		utils.FormatMoney(payment.Amount))
	return n.send(ctx, booking, entity.NotificationPaymentProofReceived, "Payment Proof Received", msg)
}

func (n *notifier) NotifyPaymentVerified(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error {
	msg := fmt.Sprintf("Your payment of $%s has been verified and approved. Your booking is confirmed!",
		utils.FormatMoney(payment.Amount))
	return n.send(ctx, booking, entity.NotificationPaymentVerified, "Payment Verified", msg)
}

func (n *notifier) NotifyPaymentRejected(ctx context.Context, booking *entity.Booking, comment *string) error {
	msg := "Your payment proof was not approved."
	if comment != nil && *comment != "" {
		msg += " Reason: " + *comment
	}
	msg += " Please resubmit or contact support."
	return n.send(ctx, booking, entity.NotificationPaymentRejected, "Payment Rejected", msg)
}

func (n *notifier) send(ctx context.Context, booking *entity.Booking, t entity.NotificationType, title, message string) error {
	if booking.UserID == nil {
		return nil
	}

	bookingID := booking.ID
	notification := &entity.Notification{
		BaseNoDelete: entity.NewBaseNoDelete(n.now()),
		UserID:       *booking.UserID,
		BookingID:    &bookingID,
		Type:         t,
		Title:        title,
		Message:      message,
		Status:       entity.NotificationUnread,
	}

	if err := n.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("store %s notification: %w", t, err)
	}
	n.metrics.NotificationCreated(string(t))

	if n.dispatcher != nil {
		if err := n.dispatcher.Dispatch(ctx, notification); err != nil {
			// Stored already; the client sees it on the next fetch.
			n.log.Warn("Failed to dispatch notification",
				zap.Error(err),
				zap.String("notification_id", notification.ID.String()),
				zap.String("type", string(t)),
			)
		}
	}

	return nil
}
