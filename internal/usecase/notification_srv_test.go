package usecase

import (
	"context"
	"fmt"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetNotifications(t *testing.T) {
	userID := uuid.New()

	t.Run("unread filter", func(t *testing.T) {
		repo := &mockNotificationRepo{}
		svc := NewNotificationService(repo, zap.NewNop())

		repo.On("FindByUserID", mock.Anything, userID, mock.MatchedBy(func(s *entity.NotificationStatus) bool {
			return s != nil && *s == entity.NotificationUnread
		}), 50).Return([]*entity.Notification{{UserID: userID, Title: "Hi"}}, nil)
		repo.On("CountUnread", mock.Anything, userID).Return(int64(1), nil)

		list, unread, err := svc.GetNotifications(context.Background(), userID, "unread")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.EqualValues(t, 1, unread)
	})

	t.Run("no filter", func(t *testing.T) {
		repo := &mockNotificationRepo{}
		svc := NewNotificationService(repo, zap.NewNop())

		repo.On("FindByUserID", mock.Anything, userID, (*entity.NotificationStatus)(nil), 50).Return(nil, nil)
		repo.On("CountUnread", mock.Anything, userID).Return(int64(0), nil)

		list, _, err := svc.GetNotifications(context.Background(), userID, "")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("bad status", func(t *testing.T) {
		svc := NewNotificationService(&mockNotificationRepo{}, zap.NewNop())

		_, _, err := svc.GetNotifications(context.Background(), userID, "archived")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestMarkRead_OtherUsersNotification(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, zap.NewNop())
	id, userID := uuid.New(), uuid.New()

	repo.On("MarkRead", mock.Anything, id, userID).
		Return(fmt.Errorf("mark notification read: %w", repository.ErrNoRowsAffected))

	err := svc.MarkRead(context.Background(), id, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotification(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, zap.NewNop())
	id, userID := uuid.New(), uuid.New()
	repo.On("Delete", mock.Anything, id, userID).Return(nil)

	require.NoError(t, svc.DeleteNotification(context.Background(), id, userID))
	repo.AssertExpectations(t)
}
