package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingService interface {
	// Create accepts guests; caller is nil for anonymous requests.
	CreateBooking(ctx context.Context, caller *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, ref string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, ref string, userID uuid.UUID) (*response.CancelBookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(repo *repository.Repository, notifier Notifier, m *metrics.Metrics, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, caller *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	checkIn, _ := utils.ParseDate(req.CheckIn)
	checkOut, _ := utils.ParseDate(req.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, fieldError("checkout", "Check-out must be after check-in")
	}

	ref := req.Reference()
	if ref == "" {
		ref = utils.GenerateBookingReference(s.now())
	}

	// 2. Resolve owner
	owner, err := s.resolveOwner(ctx, caller, req)
	if err != nil {
		return nil, err
	}

	var roomID *uuid.UUID
	if req.RoomID != "" {
		id := uuid.MustParse(req.RoomID)
		roomID = &id
	}

	booking := &entity.Booking{
		BaseNoDelete:    entity.NewBaseNoDelete(s.now()),
		Reference:       ref,
		UserID:          owner,
		RoomID:          roomID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		RoomType:        req.RoomType,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		Nights:          req.Nights,
		Rate:            *req.Rate,
		Total:           *req.Total,
		Status:          entity.BookingStatusConfirmed,
		PaidStatus:      entity.PaidStatusUnpaid,
		SpecialRequests: req.SpecialRequests,
	}

	// 3. Check the room and save under its row lock
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Booking.FindByReference(ctx, ref)
		if err != nil {
			return err
		}
		if existing != nil {
			return newError(ErrConflict, "Booking ID already exists")
		}

		if roomID != nil {
			if err := s.checkRoom(ctx, tx, *roomID, booking); err != nil {
				return err
			}
		}

		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, newError(ErrConflict, "Booking ID already exists")
		}
		if isClientError(err) {
			return nil, err
		}
		s.log.Error("Failed to create booking", zap.Error(err), zap.String("booking_ref", ref))
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.metrics.BookingCreated()
	s.log.Info("Booking created",
		zap.String("booking_ref", booking.Reference),
		zap.Bool("guest", owner == nil),
		zap.Float64("total", booking.Total),
	)

	// 4. Notify the owner
	if err := s.notifier.NotifyBookingConfirmation(ctx, booking); err != nil {
		s.log.Warn("Failed to create booking notification", zap.Error(err), zap.String("booking_ref", ref))
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetBooking(ctx context.Context, ref string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, ref)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, ref string, userID uuid.UUID) (*response.CancelBookingResponse, error) {
	var (
		booking *entity.Booking
		refund  float64
	)

	// Lock the row so a concurrent payment cannot change paid_status under us
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		booking, err = tx.Booking.FindByReferenceForUpdate(ctx, ref)
		if err != nil {
			return err
		}
		if booking == nil {
			return newError(ErrNotFound, "Booking not found")
		}

		if !booking.IsOwnedBy(userID) {
			s.log.Warn("Cancel attempt on foreign booking",
				zap.String("booking_ref", ref),
				zap.String("user_id", userID.String()))
			return newError(ErrForbidden, "You can only cancel your own bookings")
		}

		if booking.IsClosed() {
			return newError(ErrInvalidState, fmt.Sprintf("Booking cannot be cancelled (status: %s)", booking.Status))
		}

		now := s.now()
		if booking.PaidStatus == entity.PaidStatusPaid {
			refund = RefundFor(booking, now)
		}
		applyCancellation(booking, refund, now)

		return tx.Booking.Update(ctx, booking)
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_ref", ref))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_ref", ref),
		zap.Float64("refund", refund))

	if err := s.notifier.NotifyBookingCancelled(ctx, booking, refund); err != nil {
		s.log.Warn("Failed to create cancellation notification", zap.Error(err), zap.String("booking_ref", ref))
	}

	return &response.CancelBookingResponse{
		Booking:      response.BookingToResponse(booking),
		RefundAmount: refund,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, ref string) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, ref)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_ref", ref))
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}
	return booking, nil
}

// resolveOwner prefers the caller, then userEmail, then userId.
func (s *bookingService) resolveOwner(ctx context.Context, caller *uuid.UUID, req *request.CreateBookingRequest) (*uuid.UUID, error) {
	if caller != nil {
		return caller, nil
	}

	if req.UserEmail != "" {
		user, err := s.repo.User.FindByEmail(ctx, req.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("find owner by email: %w", err)
		}
		if user != nil {
			return &user.ID, nil
		}
	}

	if req.UserID != "" {
		user, err := s.repo.User.FindByID(ctx, uuid.MustParse(req.UserID))
		if err != nil {
			return nil, fmt.Errorf("find owner by id: %w", err)
		}
		if user != nil {
			return &user.ID, nil
		}
	}

	return nil, nil
}

func (s *bookingService) checkRoom(ctx context.Context, tx *repository.Repository, roomID uuid.UUID, booking *entity.Booking) error {
	room, err := tx.Room.FindByIDForUpdate(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return newError(ErrNotFound, "Room not found")
	}
	if room.Status != entity.RoomStatusAvailable {
		return fieldError("roomId", "Room is not available for booking")
	}
	if booking.Guests > room.Capacity {
		return fieldError("guests", fmt.Sprintf("Room capacity is %d guests", room.Capacity))
	}

	conflicts, err := tx.Booking.CountOverlapping(ctx, roomID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return newError(ErrConflict, "Room is not available for the selected dates")
	}
	return nil
}

// RefundFor applies the cancellation policy: the full total at least 48 hours
// before check-in, half at least 24 hours before, nothing after that.
func RefundFor(booking *entity.Booking, now time.Time) float64 {
	hours := booking.CheckIn.Sub(now).Hours()
	switch {
	case hours >= 48:
		return booking.Total
	case hours >= 24:
		return utils.RoundTo(booking.Total*0.5, 2)
	default:
		return 0
	}
}

func applyCancellation(booking *entity.Booking, refund float64, now time.Time) {
	booking.Status = entity.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.RefundAmount = &refund
	if refund > 0 {
		booking.PaidStatus = entity.PaidStatusRefunded
	}
	booking.UpdatedAt = now
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
