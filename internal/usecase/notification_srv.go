package usecase

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notificationListLimit = 50

type NotificationService interface {
	// GetNotifications returns up to 50 notifications, newest first, and the unread count.
	// An empty status lists every notification.
	GetNotifications(ctx context.Context, userID uuid.UUID, status string) ([]response.NotificationResponse, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, id, userID uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, status string) ([]response.NotificationResponse, int64, error) {
	var filter *entity.NotificationStatus
	switch entity.NotificationStatus(status) {
	case "":
	case entity.NotificationUnread, entity.NotificationRead:
		st := entity.NotificationStatus(status)
		filter = &st
	default:
		return nil, 0, fieldError("status", "Must be one of: unread, read")
	}

	list, err := s.repo.FindByUserID(ctx, userID, filter, notificationListLimit)
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count unread: %w", err)
	}

	return response.NotificationsToResponse(list), unread, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count unread notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return unread, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return newError(ErrNotFound, "Notification not found")
		}
		s.log.Error("Failed to mark notification read", zap.Error(err), zap.String("notification_id", id.String()))
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.log.Error("Failed to mark all notifications read", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return updated, nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return newError(ErrNotFound, "Notification not found")
		}
		s.log.Error("Failed to delete notification", zap.Error(err), zap.String("notification_id", id.String()))
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
