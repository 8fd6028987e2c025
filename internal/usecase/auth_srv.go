package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo describes the device a session is opened from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserSummary, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	OAuthLogin(ctx context.Context, provider entity.AuthProvider, req *request.OAuthLoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a bearer token, consulting the cache before Postgres.
	// It returns nil, nil for unknown, revoked or expired tokens.
	Authenticate(ctx context.Context, token string) (*cache.SessionEntry, error)
}

type authService struct {
	repo   *repository.Repository
	cache  cache.SessionCache
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	sessionCache cache.SessionCache,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	if sessionCache == nil {
		sessionCache = cache.NewNoopSessionCache()
	}
	return &authService{
		repo:   repo,
		cache:  sessionCache,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserSummary, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	name := req.FullName()
	if name == "" {
		return nil, fieldError("name", "Name is required")
	}

	// 2. Email must be unused
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newError(ErrConflict, "Email already registered")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	provider := entity.ProviderLocal
	if req.Provider != "" {
		provider = entity.AuthProvider(req.Provider)
	}

	// 4. Save user
	user := &entity.User{
		Base:         entity.NewBase(s.now()),
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashed,
		Phone:        req.Phone,
		Provider:     provider,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, newError(ErrConflict, "Email already registered")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	summary := response.UserToSummary(user)
	return &summary, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, newError(ErrInvalidCredentials, "Invalid email or password")
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrInvalidCredentials, "Invalid email or password")
	}

	// 4. Check account state
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrForbidden, "Account is deactivated")
	}

	// 5. Open session
	session, err := s.createSession(ctx, user, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// OAuthLogin trusts the identity the client obtained from the provider.
func (s *authService) OAuthLogin(ctx context.Context, provider entity.AuthProvider, req *request.OAuthLoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("OAuth login validation failed", zap.Error(err), zap.String("provider", string(provider)))
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		// The random password only keeps the column non-empty; the account
		// signs in through the provider.
		hashed, err := utils.HashPassword(uuid.NewString())
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = strings.SplitN(req.Email, "@", 2)[0]
		}

		user = &entity.User{
			Base:         entity.NewBase(s.now()),
			Name:         name,
			Email:        req.Email,
			PasswordHash: hashed,
			Provider:     provider,
			ProviderID:   req.ProviderID,
			Role:         entity.RoleCustomer,
			IsActive:     true,
		}
		if user, err = s.createOAuthUser(ctx, user); err != nil {
			return nil, err
		}
	}

	if !user.IsActive {
		return nil, newError(ErrForbidden, "Account is deactivated")
	}

	session, err := s.createSession(ctx, user, client)
	if err != nil {
		return nil, err
	}

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// createOAuthUser saves user. A concurrent first login for the same email
// wins the insert, so a unique violation resolves to that row.
func (s *authService) createOAuthUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.repo.User.Create(ctx, user)
	if err == nil {
		s.log.Info("OAuth user created",
			zap.String("user_id", user.ID.String()),
			zap.String("provider", string(user.Provider)))
		return user, nil
	}
	if !isUniqueViolation(err) {
		s.log.Error("Failed to create OAuth user", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	existing, err := s.repo.User.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing == nil {
		return nil, newError(ErrConflict, "Email already registered")
	}
	return existing, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return newError(ErrNotFound, "Session not found")
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	if err := s.cache.Delete(ctx, token); err != nil {
		s.log.Warn("Failed to evict cached session", zap.Error(err))
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*cache.SessionEntry, error) {
	entry, err := s.cache.Get(ctx, token)
	if err != nil {
		s.log.Warn("Session cache lookup failed", zap.Error(err))
	}
	if entry != nil {
		return entry, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	entry = &cache.SessionEntry{
		UserID:    session.UserID,
		Role:      string(session.UserRole),
		Email:     session.UserEmail,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.cache.Set(ctx, token, entry); err != nil {
		s.log.Warn("Failed to cache session", zap.Error(err))
	}

	return entry, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, user *entity.User, client ClientInfo) (*entity.Session, error) {
	hours := s.config.Session.ExpiryHours
	if hours <= 0 {
		hours = 24
	}

	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     user.ID,
		Token:      utils.GenerateSessionToken(),
		UserAgent:  optional(client.UserAgent),
		IPAddress:  optional(client.IPAddress),
		ExpiresAt:  now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	entry := &cache.SessionEntry{
		UserID:    user.ID,
		Role:      string(user.Role),
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.cache.Set(ctx, session.Token.String(), entry); err != nil {
		s.log.Warn("Failed to cache session", zap.Error(err))
	}

	return session, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
