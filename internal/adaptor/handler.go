package adaptor

import (
	"hotel-booking/internal/notify"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Notification *NotificationHandler
	Room         *RoomHandler
	Review       *ReviewHandler
	Admin        *AdminHandler
}

func NewHandler(service *usecase.Service, hub *notify.Hub, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Notification: NewNotificationHandler(service.Notification, hub, config.SSE.Heartbeat, log),
		Room:         NewRoomHandler(service.Room, log),
		Review:       NewReviewHandler(service.Review, log),
		Admin:        NewAdminHandler(service.Admin, log),
	}
}
