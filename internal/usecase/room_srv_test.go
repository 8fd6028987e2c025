package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRoomService(t *testing.T) (*roomService, *repoMocks, *mockStore) {
	t.Helper()
	repo, mocks := newRepoMocks()
	store := &mockStore{}
	return &roomService{
		repo:  repo,
		store: store,
		log:   zap.NewNop(),
		now:   fixedNow,
	}, mocks, store
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestCheckAvailability(t *testing.T) {
	roomID := uuid.New()
	room := &entity.Room{BaseNoDelete: entity.BaseNoDelete{ID: roomID}, Title: "Sea View", Price: 180}

	t.Run("free when no paid stay overlaps", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("FindByID", mock.Anything, roomID).Return(room, nil)
		mocks.booking.On("CountOverlapping", mock.Anything, roomID, day("2030-06-01"), day("2030-06-03")).
			Return(int64(0), nil)

		resp, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
			RoomID:   roomID.String(),
			CheckIn:  "2030-06-01",
			CheckOut: "2030-06-03",
		})
		require.NoError(t, err)
		require.True(t, resp.Available)
		require.Equal(t, "Sea View", resp.RoomTitle)
		require.Equal(t, 180.0, resp.Price)
		require.Equal(t, "2030-06-01", resp.CheckIn)
	})

	t.Run("taken when a paid stay overlaps", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("FindByID", mock.Anything, roomID).Return(room, nil)
		mocks.booking.On("CountOverlapping", mock.Anything, roomID, mock.Anything, mock.Anything).
			Return(int64(1), nil)

		resp, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
			RoomID:   roomID.String(),
			CheckIn:  "2030-06-05",
			CheckOut: "2030-06-07",
		})
		require.NoError(t, err)
		require.False(t, resp.Available)
	})

	t.Run("check-in in the past", func(t *testing.T) {
		svc, _, _ := newTestRoomService(t)

		_, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
			RoomID:   roomID.String(),
			CheckIn:  "2030-05-31",
			CheckOut: "2030-06-02",
		})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "check_in")
	})

	t.Run("check-out must follow check-in", func(t *testing.T) {
		svc, _, _ := newTestRoomService(t)

		_, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
			RoomID:   roomID.String(),
			CheckIn:  "2030-06-04",
			CheckOut: "2030-06-04",
		})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "check_out")
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("FindByID", mock.Anything, roomID).Return(nil, nil)

		_, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
			RoomID:   roomID.String(),
			CheckIn:  "2030-06-04",
			CheckOut: "2030-06-05",
		})
		require.ErrorIs(t, err, ErrNotFound)
		mocks.booking.AssertNotCalled(t, "CountOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookedNights(t *testing.T) {
	from, to := day("2030-06-01"), day("2030-07-01")
	bookings := []*entity.Booking{
		{CheckIn: day("2030-05-30"), CheckOut: day("2030-06-02")},
		{CheckIn: day("2030-06-10"), CheckOut: day("2030-06-12")},
		{CheckIn: day("2030-06-11"), CheckOut: day("2030-06-12")},
		{CheckIn: day("2030-06-29"), CheckOut: day("2030-07-03")},
	}

	require.Equal(t, []string{
		"2030-06-01",
		"2030-06-10",
		"2030-06-11",
		"2030-06-29",
		"2030-06-30",
	}, bookedNights(bookings, from, to))

	require.Empty(t, bookedNights(nil, from, to))
}

func TestGetCalendar(t *testing.T) {
	roomID := uuid.New()

	t.Run("defaults to the current month", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("FindByID", mock.Anything, roomID).Return(&entity.Room{BaseNoDelete: entity.BaseNoDelete{ID: roomID}}, nil)
		mocks.booking.On("FindBookedInRange", mock.Anything, roomID, day("2030-06-01"), day("2030-07-01")).
			Return([]*entity.Booking{{CheckIn: day("2030-06-03"), CheckOut: day("2030-06-05")}}, nil)

		resp, err := svc.GetCalendar(context.Background(), roomID, 0, 0)
		require.NoError(t, err)
		require.Equal(t, 6, resp.Month)
		require.Equal(t, 2030, resp.Year)
		require.Equal(t, []string{"2030-06-03", "2030-06-04"}, resp.BookedDates)
	})

	for _, tc := range []struct {
		name        string
		month, year int
		field       string
	}{
		{"month above range", 13, 2030, "month"},
		{"negative month", -1, 2030, "month"},
		{"year before 2024", 5, 2023, "year"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc, mocks, _ := newTestRoomService(t)

			_, err := svc.GetCalendar(context.Background(), roomID, tc.month, tc.year)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Contains(t, ve.Fields, tc.field)
			mocks.room.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown room", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("FindByID", mock.Anything, roomID).Return(nil, nil)

		_, err := svc.GetCalendar(context.Background(), roomID, 7, 2030)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBulkUpdatePrices(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	p1, p2 := 120.0, 240.0
	req := &request.BulkPriceUpdateRequest{Updates: []request.PriceUpdate{
		{RoomID: first.String(), Price: &p1},
		{RoomID: second.String(), Price: &p2},
	}}

	t.Run("applies every update in one transaction", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("UpdatePrice", mock.Anything, first, 120.0).Return(nil)
		mocks.room.On("UpdatePrice", mock.Anything, second, 240.0).Return(nil)

		n, err := svc.BulkUpdatePrices(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, 1, mocks.tx.calls)
		mocks.room.AssertExpectations(t)
	})

	t.Run("unknown room aborts the batch", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)
		mocks.room.On("UpdatePrice", mock.Anything, first, 120.0).Return(nil)
		mocks.room.On("UpdatePrice", mock.Anything, second, 240.0).
			Return(fmt.Errorf("update price: %w", repository.ErrNoRowsAffected))

		n, err := svc.BulkUpdatePrices(context.Background(), req)
		require.ErrorIs(t, err, ErrNotFound)
		require.Contains(t, err.Error(), second.String())
		require.Zero(t, n)
	})

	t.Run("empty batch", func(t *testing.T) {
		svc, mocks, _ := newTestRoomService(t)

		_, err := svc.BulkUpdatePrices(context.Background(), &request.BulkPriceUpdateRequest{})
		require.ErrorIs(t, err, ErrValidation)
		require.Zero(t, mocks.tx.calls)
	})
}
