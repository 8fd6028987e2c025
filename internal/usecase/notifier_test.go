package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotifier() (*notifier, *mockNotificationRepo, *mockDispatcher) {
	repo := &mockNotificationRepo{}
	d := &mockDispatcher{}
	return &notifier{
		repo:       repo,
		dispatcher: d,
		log:        zap.NewNop(),
		now:        fixedNow,
	}, repo, d
}

func ownedBooking() *entity.Booking {
	owner := uuid.New()
	return &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Reference:    "BK1",
		UserID:       &owner,
		RoomType:     "Deluxe",
		CheckIn:      time.Date(2030, 7, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2030, 7, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestNotifier_Messages(t *testing.T) {
	comment := "Amount mismatch"
	payment := &entity.Payment{Amount: 1250.5, TransactionID: "TXN1"}

	tests := []struct {
		name    string
		send    func(n *notifier, b *entity.Booking) error
		typ     entity.NotificationType
		title   string
		message string
	}{
		{
			name:    "booking confirmation",
			send:    func(n *notifier, b *entity.Booking) error { return n.NotifyBookingConfirmation(context.Background(), b) },
			typ:     entity.NotificationBookingConfirmation,
			title:   "Booking Confirmed",
			message: "Your booking for Deluxe from 2030-07-10 to 2030-07-12 has been confirmed. Booking ID: BK1",
		},
		{
			name:    "payment received",
			send:    func(n *notifier, b *entity.Booking) error { return n.NotifyPaymentReceived(context.Background(), b, payment) },
			typ:     entity.NotificationPaymentReceived,
			title:   "Payment Received",
			message: "Payment of $1,250.50 has been received for your booking. Transaction ID: TXN1",
		},
		{
			name:    "cancelled with refund",
			send:    func(n *notifier, b *entity.Booking) error { return n.NotifyBookingCancelled(context.Background(), b, 150) },
			typ:     entity.NotificationBookingCancelled,
			title:   "Booking Cancelled",
			message: "Your booking for Deluxe has been cancelled. A refund of $150.00 has been processed.",
		},
		{
			name:    "cancelled without refund",
			send:    func(n *notifier, b *entity.Booking) error { return n.NotifyBookingCancelled(context.Background(), b, 0) },
			typ:     entity.NotificationBookingCancelled,
			title:   "Booking Cancelled",
			message: "Your booking for Deluxe has been cancelled.",
		},
		{
			name:    "payment rejected with reason",
			send:    func(n *notifier, b *entity.Booking) error { return n.NotifyPaymentRejected(context.Background(), b, &comment) },
			typ:     entity.NotificationPaymentRejected,
			title:   "Payment Rejected",
			message: "Your payment proof was not approved. Reason: Amount mismatch Please resubmit or contact support.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, repo, d := newTestNotifier()
			b := ownedBooking()

			repo.On("Create", mock.Anything, mock.MatchedBy(func(got *entity.Notification) bool {
				return got.UserID == *b.UserID &&
					got.BookingID != nil && *got.BookingID == b.ID &&
					got.Type == tt.typ &&
					got.Title == tt.title &&
					got.Message == tt.message &&
					got.Status == entity.NotificationUnread
			})).Return(nil)
			d.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

			require.NoError(t, tt.send(n, b))
			repo.AssertExpectations(t)
			d.AssertExpectations(t)
		})
	}
}

func TestNotifier_SkipsGuestBookings(t *testing.T) {
	n, repo, d := newTestNotifier()
	b := ownedBooking()
	b.UserID = nil

	require.NoError(t, n.NotifyBookingConfirmation(context.Background(), b))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestNotifier_DispatchFailureIsNotFatal(t *testing.T) {
	n, repo, d := newTestNotifier()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	require.NoError(t, n.NotifyBookingConfirmation(context.Background(), ownedBooking()))
}

func TestNotifier_StoreFailure(t *testing.T) {
	n, repo, d := newTestNotifier()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	require.Error(t, n.NotifyBookingConfirmation(context.Background(), ownedBooking()))
	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}
