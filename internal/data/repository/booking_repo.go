package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, ref string) (*entity.Booking, error)
	// FindByReferenceForUpdate locks the row until the surrounding transaction ends.
	FindByReferenceForUpdate(ctx context.Context, ref string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdatePaidStatus(ctx context.Context, ref string, status entity.PaidStatus) error

	// Business queries
	CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (int64, error)
	FindBookedInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)
	SummaryByUser(ctx context.Context, userID uuid.UUID, today time.Time) (*entity.BookingSummary, error)
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)

	// Admin queries
	FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_id, user_id, room_id, first_name, last_name, email, phone,
		       room_type, check_in, check_out, guests, nights, rate, total, status,
		       paid_status, special_requests, refund_amount, cancelled_at,
		       created_at, updated_at`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.RoomID,
		&booking.FirstName,
		&booking.LastName,
		&booking.Email,
		&booking.Phone,
		&booking.RoomType,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Guests,
		&booking.Nights,
		&booking.Rate,
		&booking.Total,
		&booking.Status,
		&booking.PaidStatus,
		&booking.SpecialRequests,
		&booking.RefundAmount,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) scanAll(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_id, user_id, room_id, first_name, last_name, email,
		                      phone, room_type, check_in, check_out, guests, nights, rate,
		                      total, status, paid_status, special_requests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.RoomID,
		booking.FirstName,
		booking.LastName,
		booking.Email,
		booking.Phone,
		booking.RoomType,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.Nights,
		booking.Rate,
		booking.Total,
		booking.Status,
		booking.PaidStatus,
		booking.SpecialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.Reference),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, ref))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", ref, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReferenceForUpdate(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1 FOR UPDATE`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, ref))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("lock booking %s: %w", ref, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return r.scanAll(rows)
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, paid_status = $3, refund_amount = $4, cancelled_at = $5,
		    special_requests = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.PaidStatus,
		booking.RefundAmount,
		booking.CancelledAt,
		booking.SpecialRequests,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_ref", booking.Reference),
		)
		return fmt.Errorf("update booking %s: %w", booking.Reference, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s: %w", booking.Reference, ErrNoRowsAffected)
	}

	return nil
}

func (r *bookingRepository) UpdatePaidStatus(ctx context.Context, ref string, status entity.PaidStatus) error {
	query := `UPDATE bookings SET paid_status = $2, updated_at = NOW() WHERE booking_id = $1`

	result, err := r.db.Exec(ctx, query, ref, status)
	if err != nil {
		r.log.Error("Failed to update paid status",
			zap.Error(err),
			zap.String("booking_ref", ref),
			zap.String("paid_status", string(status)),
		)
		return fmt.Errorf("update paid status of %s: %w", ref, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update paid status of %s: %w", ref, ErrNoRowsAffected)
	}

	return nil
}

// CountOverlapping counts paid, non-cancelled bookings of roomID that
// intersect the half-open range [checkIn, checkOut).
func (r *bookingRepository) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE room_id = $1
		  AND status <> 'cancelled'
		  AND paid_status = 'paid'
		  AND check_in < $3
		  AND check_out > $2
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, roomID, checkIn, checkOut).Scan(&count); err != nil {
		r.log.Error("Failed to count overlapping bookings",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return 0, fmt.Errorf("count overlapping bookings for room %s: %w", roomID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindBookedInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		  AND status <> 'cancelled'
		  AND paid_status = 'paid'
		  AND check_in < $3
		  AND check_out > $2
		ORDER BY check_in
	`

	rows, err := r.db.Query(ctx, query, roomID, from, to)
	if err != nil {
		r.log.Error("Failed to find booked ranges",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find booked ranges for room %s: %w", roomID.String(), err)
	}

	return r.scanAll(rows)
}

func (r *bookingRepository) SummaryByUser(ctx context.Context, userID uuid.UUID, today time.Time) (*entity.BookingSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE check_in >= $2 AND status <> 'cancelled')
		FROM bookings
		WHERE user_id = $1
	`

	var summary entity.BookingSummary
	err := r.db.QueryRow(ctx, query, userID, today).Scan(
		&summary.Total,
		&summary.Completed,
		&summary.Upcoming,
	)
	if err != nil {
		r.log.Error("Failed to summarise user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("summarise bookings of %s: %w", userID.String(), err)
	}

	return &summary, nil
}

// CompleteFinished marks confirmed bookings whose check-out is before now as completed.
func (r *bookingRepository) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = $1
		WHERE status = 'confirmed' AND check_out < $2
	`

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	result, err := r.db.Exec(ctx, query, now, today)
	if err != nil {
		r.log.Error("Failed to complete finished bookings", zap.Error(err))
		return 0, fmt.Errorf("complete finished bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

func buildBookingFilter(filter entity.BookingFilter) (string, []any) {
	var conds []string
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PaidStatus != "" {
		args = append(args, filter.PaidStatus)
		conds = append(conds, fmt.Sprintf("paid_status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := buildBookingFilter(filter)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return r.scanAll(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	where, args := buildBookingFilter(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent bookings", zap.Error(err))
		return nil, fmt.Errorf("find recent bookings: %w", err)
	}

	return r.scanAll(rows)
}
