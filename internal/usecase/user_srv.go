package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	// ChangePassword revokes every other session of the user. currentToken survives.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentToken string, req *request.ChangePasswordRequest) error
	BookingsSummary(ctx context.Context, userID uuid.UUID) (*response.BookingsSummaryResponse, error)
}

type userService struct {
	repo  *repository.Repository
	cache cache.SessionCache
	log   *zap.Logger
	now   func() time.Time
}

func NewUserService(repo *repository.Repository, sessionCache cache.SessionCache, log *zap.Logger) UserService {
	if sessionCache == nil {
		sessionCache = cache.NewNoopSessionCache()
	}
	return &userService{
		repo:  repo,
		cache: sessionCache,
		log:   log.With(zap.String("service", "user")),
		now:   time.Now,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Load user
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	// 3. Email must stay unique
	emailChanged := !strings.EqualFold(user.Email, strings.TrimSpace(req.Email))
	if emailChanged {
		other, err := us.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil && other.ID != user.ID {
			return nil, newError(ErrConflict, "Email already in use")
		}
	}

	// 4. Save
	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.TrimSpace(req.Email)
	user.Phone = req.Phone
	user.UpdatedAt = us.now()

	if err := us.repo.User.Update(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, newError(ErrConflict, "Email already in use")
		}
		us.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	// 5. Cached sessions carry the old email
	if emailChanged {
		us.evictSessions(ctx, userID)
	}

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ChangePassword(ctx context.Context, userID uuid.UUID, currentToken string, req *request.ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return newError(ErrNotFound, "User not found")
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		us.log.Warn("Wrong current password", zap.String("user_id", userID.String()))
		return fieldError("current_password", "Current password is incorrect")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var revoked []string
	err = us.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.UpdatePassword(ctx, userID, hashed); err != nil {
			return err
		}
		revoked, err = tx.Session.RevokeOtherSessions(ctx, userID, currentToken)
		return err
	})
	if err != nil {
		us.log.Error("Failed to change password", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("change password: %w", err)
	}

	if err := us.cache.Delete(ctx, revoked...); err != nil {
		us.log.Warn("Failed to evict revoked sessions", zap.Error(err))
	}

	us.log.Info("Password changed",
		zap.String("user_id", userID.String()),
		zap.Int("revoked_sessions", len(revoked)))
	return nil
}

func (us *userService) evictSessions(ctx context.Context, userID uuid.UUID) {
	tokens, err := us.repo.Session.ActiveTokens(ctx, userID)
	if err != nil {
		us.log.Warn("Failed to list sessions for eviction", zap.Error(err), zap.String("user_id", userID.String()))
		return
	}
	if len(tokens) == 0 {
		return
	}
	if err := us.cache.Delete(ctx, tokens...); err != nil {
		us.log.Warn("Failed to evict cached sessions", zap.Error(err), zap.String("user_id", userID.String()))
	}
}

func (us *userService) BookingsSummary(ctx context.Context, userID uuid.UUID) (*response.BookingsSummaryResponse, error) {
	summary, err := us.repo.Booking.SummaryByUser(ctx, userID, utils.StartOfDay(us.now()))
	if err != nil {
		us.log.Error("Failed to summarise bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("summarise bookings: %w", err)
	}

	resp := response.SummaryToResponse(summary)
	return &resp, nil
}
