package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const reviewsPerPage = 10

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetRoomReviews(ctx context.Context, roomID uuid.UUID, page int) (*response.Page[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, reviewID, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
		now:  time.Now,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}
	roomID := uuid.MustParse(req.RoomID)

	// 2. Booking must be the caller's
	booking, err := s.repo.Booking.FindByReference(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}
	if !booking.IsOwnedBy(userID) {
		return nil, newError(ErrForbidden, "You can only review your own bookings")
	}
	if booking.RoomID != nil && *booking.RoomID != roomID {
		return nil, fieldError("room_id", "Booking is for a different room")
	}

	// 3. Room must exist
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, newError(ErrNotFound, "Room not found")
	}

	// 4. One review per booking
	existing, err := s.repo.Review.FindByBookingRef(ctx, booking.Reference)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fieldError("booking_id", "You have already reviewed this booking")
	}

	review := &entity.Review{
		BaseNoDelete:    entity.NewBaseNoDelete(s.now()),
		UserID:          userID,
		RoomID:          roomID,
		BookingRef:      booking.Reference,
		Rating:          req.Rating,
		Comment:         req.Comment,
		VerifiedBooking: true,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if isUniqueViolation(err) {
			return nil, fieldError("booking_id", "You have already reviewed this booking")
		}
		s.log.Error("Failed to create review", zap.Error(err), zap.String("booking_ref", booking.Reference))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("room_id", roomID.String()),
		zap.Int("rating", review.Rating))

	// Reload for the author's name.
	saved, err := s.repo.Review.FindByID(ctx, review.ID)
	if err == nil && saved != nil {
		review = saved
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetRoomReviews(ctx context.Context, roomID uuid.UUID, page int) (*response.Page[response.ReviewResponse], error) {
	req := request.NewPaginatedRequest(page, reviewsPerPage)

	reviews, err := s.repo.Review.FindByRoomID(ctx, roomID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get room reviews", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, fmt.Errorf("get room reviews: %w", err)
	}

	total, err := s.repo.Review.CountByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("count room reviews: %w", err)
	}

	return response.NewPage(response.ReviewsToResponse(reviews), page, req.Limit(), total), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	review, err := s.findOwnedReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	review.UpdatedAt = s.now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	if _, err := s.findOwnedReview(ctx, reviewID, userID); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", reviewID.String()))
	return nil
}

func (s *reviewService) findOwnedReview(ctx context.Context, reviewID, userID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, newError(ErrNotFound, "Review not found")
	}
	if review.UserID != userID {
		return nil, newError(ErrForbidden, "You can only modify your own reviews")
	}
	return review, nil
}
