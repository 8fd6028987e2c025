package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	adminPerPage       = 20
	recentBookingCount = 5
	topRoomTypeCount   = 5
	reportWindowDays   = 30
)

type AdminService interface {
	GetDashboard(ctx context.Context) (*response.DashboardResponse, error)
	GetReports(ctx context.Context) (*response.ReportsResponse, error)
	ListBookings(ctx context.Context, q request.BookingListQuery) (*response.Page[response.BookingListItem], error)
	UpdateBookingStatus(ctx context.Context, ref string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	// CancelBooking skips the refund policy and refunds paid bookings in full.
	CancelBooking(ctx context.Context, ref string) (*response.CancelBookingResponse, error)
	ListCustomers(ctx context.Context, page int) (*response.Page[response.CustomerResponse], error)
}

type adminService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewAdminService(repo *repository.Repository, notifier Notifier, log *zap.Logger) AdminService {
	return &adminService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "admin")),
		now:      time.Now,
	}
}

func (s *adminService) GetDashboard(ctx context.Context) (*response.DashboardResponse, error) {
	var (
		resp response.DashboardResponse
		err  error
	)

	if resp.TotalBookings, err = s.repo.Report.CountBookings(ctx); err != nil {
		return nil, s.fail("count bookings", err)
	}
	if resp.TotalRevenue, err = s.repo.Report.TotalRevenue(ctx); err != nil {
		return nil, s.fail("sum revenue", err)
	}
	if resp.TotalUsers, err = s.repo.User.CountByRole(ctx, entity.RoleCustomer); err != nil {
		return nil, s.fail("count users", err)
	}
	if resp.TotalRooms, err = s.repo.Room.CountAll(ctx); err != nil {
		return nil, s.fail("count rooms", err)
	}
	if resp.PendingPayments, err = s.repo.Report.CountPendingVerification(ctx); err != nil {
		return nil, s.fail("count pending payments", err)
	}

	recent, err := s.repo.Booking.FindRecent(ctx, recentBookingCount)
	if err != nil {
		return nil, s.fail("load recent bookings", err)
	}
	resp.RecentBookings = response.BookingsToListItems(recent)

	return &resp, nil
}

func (s *adminService) GetReports(ctx context.Context) (*response.ReportsResponse, error) {
	since := utils.StartOfDay(s.now()).AddDate(0, 0, -reportWindowDays)

	stats, err := s.repo.Report.BookingStatsSince(ctx, since)
	if err != nil {
		return nil, s.fail("load booking stats", err)
	}
	byMethod, err := s.repo.Report.RevenueByMethod(ctx)
	if err != nil {
		return nil, s.fail("load revenue by method", err)
	}
	top, err := s.repo.Report.TopRoomTypes(ctx, topRoomTypeCount)
	if err != nil {
		return nil, s.fail("load top room types", err)
	}
	revenue, err := s.repo.Report.TotalRevenue(ctx)
	if err != nil {
		return nil, s.fail("sum revenue", err)
	}
	bookings, err := s.repo.Report.CountBookings(ctx)
	if err != nil {
		return nil, s.fail("count bookings", err)
	}
	avg, err := s.repo.Report.AverageBookingValue(ctx)
	if err != nil {
		return nil, s.fail("average booking value", err)
	}

	return &response.ReportsResponse{
		BookingStats:        response.DailyStatsToResponse(stats),
		RevenueByMethod:     response.MethodRevenueToResponse(byMethod),
		TopRooms:            response.RoomTypeStatsToResponse(top),
		TotalRevenue:        revenue,
		TotalBookings:       bookings,
		AverageBookingValue: utils.RoundTo(avg, 2),
	}, nil
}

func (s *adminService) ListBookings(ctx context.Context, q request.BookingListQuery) (*response.Page[response.BookingListItem], error) {
	page := request.NewPaginatedRequest(q.Page, adminPerPage)
	filter := entity.BookingFilter{Status: q.Status, PaidStatus: q.PaidStatus}

	bookings, err := s.repo.Booking.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, s.fail("list bookings", err)
	}
	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		return nil, s.fail("count bookings", err)
	}

	return response.NewPage(response.BookingsToListItems(bookings), q.Page, page.Limit(), total), nil
}

func (s *adminService) UpdateBookingStatus(ctx context.Context, ref string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var booking *entity.Booking
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		if booking, err = lockBooking(ctx, tx, ref); err != nil {
			return err
		}
		if booking.Status == entity.BookingStatusCancelled {
			return newError(ErrInvalidState, "Cancelled bookings cannot change status")
		}

		booking.Status = entity.BookingStatus(req.Status)
		booking.UpdatedAt = s.now()
		return tx.Booking.Update(ctx, booking)
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		return nil, s.fail("update booking status", err)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_ref", ref),
		zap.String("status", req.Status))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *adminService) CancelBooking(ctx context.Context, ref string) (*response.CancelBookingResponse, error) {
	var (
		booking *entity.Booking
		refund  float64
	)

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		if booking, err = lockBooking(ctx, tx, ref); err != nil {
			return err
		}
		if booking.Status == entity.BookingStatusCancelled {
			return newError(ErrInvalidState, "Booking is already cancelled")
		}

		if booking.PaidStatus == entity.PaidStatusPaid {
			refund = booking.Total
		}
		applyCancellation(booking, refund, s.now())
		return tx.Booking.Update(ctx, booking)
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		return nil, s.fail("cancel booking", err)
	}

	s.log.Info("Booking cancelled by admin",
		zap.String("booking_ref", ref),
		zap.Float64("refund", refund))

	if err := s.notifier.NotifyBookingCancelled(ctx, booking, refund); err != nil {
		s.log.Warn("Failed to create cancellation notification", zap.Error(err))
	}

	return &response.CancelBookingResponse{
		Booking:      response.BookingToResponse(booking),
		RefundAmount: refund,
	}, nil
}

func (s *adminService) ListCustomers(ctx context.Context, page int) (*response.Page[response.CustomerResponse], error) {
	req := request.NewPaginatedRequest(page, adminPerPage)

	customers, err := s.repo.Report.CustomerStats(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, s.fail("list customers", err)
	}
	total, err := s.repo.Report.CountCustomers(ctx)
	if err != nil {
		return nil, s.fail("count customers", err)
	}

	return response.NewPage(response.CustomersToResponse(customers), page, req.Limit(), total), nil
}

// lockBooking loads ref under a row lock held by tx.
func lockBooking(ctx context.Context, tx *repository.Repository, ref string) (*entity.Booking, error) {
	booking, err := tx.Booking.FindByReferenceForUpdate(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}
	return booking, nil
}

func (s *adminService) fail(op string, err error) error {
	s.log.Error("Admin query failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
