package usecase

import (
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/storage"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Infra groups the adapters services push side effects through.
type Infra struct {
	SessionCache cache.SessionCache
	Dispatcher   notify.Dispatcher
	Store        storage.FileStore
	Metrics      *metrics.Metrics
}

type Service struct {
	Auth         AuthService
	User         UserService
	Booking      BookingService
	Payment      PaymentService
	Notification NotificationService
	Room         RoomService
	Review       ReviewService
	Admin        AdminService
}

func NewService(repo *repository.Repository, infra Infra, config *utils.Config, log *zap.Logger) *Service {
	notifier := NewNotifier(repo.Notification, infra.Dispatcher, infra.Metrics, log)

	return &Service{
		Auth:         NewAuthService(repo, infra.SessionCache, config, log),
		User:         NewUserService(repo, infra.SessionCache, log),
		Booking:      NewBookingService(repo, notifier, infra.Metrics, log),
		Payment:      NewPaymentService(repo, infra.Store, notifier, infra.Metrics, log),
		Notification: NewNotificationService(repo.Notification, log),
		Room:         NewRoomService(repo, infra.Store, log),
		Review:       NewReviewService(repo, log),
		Admin:        NewAdminService(repo, notifier, log),
	}
}
