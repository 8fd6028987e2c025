package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	FindByBookingRef(ctx context.Context, bookingRef string) (*entity.Review, error)
	CountByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	GetRoomReviewStats(ctx context.Context, roomID uuid.UUID) (float64, int64, error) // rating, count
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `rv.id, rv.user_id, rv.room_id, rv.booking_id, rv.rating, rv.comment,
		       rv.verified_booking, rv.created_at, rv.updated_at, COALESCE(u.name, '')`

func scanReview(row rowScanner) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.RoomID,
		&review.BookingRef,
		&review.Rating,
		&review.Comment,
		&review.VerifiedBooking,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, room_id, booking_id, rating, comment,
		                     verified_booking, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.RoomID,
		review.BookingRef,
		review.Rating,
		review.Comment,
		review.VerifiedBooking,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("booking_ref", review.BookingRef),
		)
		return fmt.Errorf("create review for booking %s: %w", review.BookingRef, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		WHERE rv.id = $1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		WHERE rv.room_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by room ID %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) FindByBookingRef(ctx context.Context, bookingRef string) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		WHERE rv.booking_id = $1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, bookingRef))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by booking",
			zap.Error(err),
			zap.String("booking_ref", bookingRef),
		)
		return nil, fmt.Errorf("find review by booking %s: %w", bookingRef, err)
	}

	return review, nil
}

func (r *reviewRepository) CountByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE room_id = $1`, roomID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return 0, fmt.Errorf("count reviews by room ID %s: %w", roomID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update review %s: %w", review.ID.String(), ErrNoRowsAffected)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id.String(), ErrNoRowsAffected)
	}

	return nil
}

func (r *reviewRepository) GetRoomReviewStats(ctx context.Context, roomID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
		FROM reviews
		WHERE room_id = $1
	`

	var avg float64
	var count int64
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&avg, &count); err != nil {
		r.log.Error("Failed to get room review stats",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return 0, 0, fmt.Errorf("get review stats for room %s: %w", roomID.String(), err)
	}

	return avg, count, nil
}
