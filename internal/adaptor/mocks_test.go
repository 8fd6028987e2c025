package adaptor

import (
	"context"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, caller *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, caller, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).([]response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, ref string) (*response.BookingResponse, error) {
	args := m.Called(ctx, ref)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, ref string, userID uuid.UUID) (*response.CancelBookingResponse, error) {
	args := m.Called(ctx, ref, userID)
	resp, _ := args.Get(0).(*response.CancelBookingResponse)
	return resp, args.Error(1)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, status string) ([]response.NotificationResponse, int64, error) {
	args := m.Called(ctx, userID, status)
	list, _ := args.Get(0).([]response.NotificationResponse)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockRoomService struct{ mock.Mock }

func (m *mockRoomService) ListRooms(ctx context.Context, q request.RoomListQuery) (*response.Page[response.RoomResponse], error) {
	args := m.Called(ctx, q)
	resp, _ := args.Get(0).(*response.Page[response.RoomResponse])
	return resp, args.Error(1)
}

func (m *mockRoomService) GetRoom(ctx context.Context, id uuid.UUID) (*response.RoomDetailResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*response.RoomDetailResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AvailabilityResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) GetCalendar(ctx context.Context, id uuid.UUID, month, year int) (*response.CalendarResponse, error) {
	args := m.Called(ctx, id, month, year)
	resp, _ := args.Get(0).(*response.CalendarResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) ListAdminRooms(ctx context.Context) ([]response.AdminRoomResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]response.AdminRoomResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.RoomResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) UpdateRoom(ctx context.Context, id uuid.UUID, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*response.RoomResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRoomService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*response.RoomResponse, error) {
	args := m.Called(ctx, id, data)
	resp, _ := args.Get(0).(*response.RoomResponse)
	return resp, args.Error(1)
}

func (m *mockRoomService) BulkUpdatePrices(ctx context.Context, req *request.BulkPriceUpdateRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}
