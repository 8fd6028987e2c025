package usecase

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) (*authService, *repoMocks, *mockSessionCache) {
	t.Helper()
	repo, mocks := newRepoMocks()
	sc := &mockSessionCache{}
	return &authService{
		repo:   repo,
		cache:  sc,
		config: &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}},
		log:    zap.NewNop(),
		now:    fixedNow,
	}, mocks, sc
}

func activeUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Name:         "Jane Guest",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}
}

func TestRegister(t *testing.T) {
	t.Run("joins first and last name", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		mocks.user.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		mocks.user.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Name == "Jane Guest" &&
				u.Role == entity.RoleCustomer &&
				u.Provider == entity.ProviderLocal &&
				u.PasswordHash != "secret1"
		})).Return(nil)

		resp, err := svc.Register(context.Background(), &request.RegisterRequest{
			FirstName: "Jane",
			LastName:  "Guest",
			Email:     "jane@example.com",
			Password:  "secret1",
		})
		require.NoError(t, err)
		require.Equal(t, "Jane Guest", resp.Name)
		mocks.user.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		mocks.user.On("FindByEmail", mock.Anything, "jane@example.com").Return(&entity.User{}, nil)

		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "secret1",
		})
		require.ErrorIs(t, err, ErrConflict)
		require.EqualError(t, err, "Email already registered")
	})

	t.Run("concurrent insert of the same email", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		mocks.user.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		mocks.user.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "secret1",
		})
		require.ErrorIs(t, err, ErrConflict)
		require.EqualError(t, err, "Email already registered")
	})

	t.Run("name required", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Email:    "jane@example.com",
			Password: "secret1",
		})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestOAuthLogin(t *testing.T) {
	t.Run("creates the account on first login", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		mocks.user.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		mocks.user.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Name == "jane" && u.Provider == entity.ProviderGoogle
		})).Return(nil)
		mocks.session.On("Create", mock.Anything, mock.Anything).Return(nil)
		sc.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.OAuthLogin(context.Background(), entity.ProviderGoogle, &request.OAuthLoginRequest{
			Token: "provider-token",
			Email: "jane@example.com",
		}, ClientInfo{})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		mocks.user.AssertExpectations(t)
	})

	t.Run("concurrent first login reuses the winning row", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		winner := activeUser(t, "ignored")
		mocks.user.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil).Once()
		mocks.user.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})
		mocks.user.On("FindByEmail", mock.Anything, "jane@example.com").Return(winner, nil).Once()
		mocks.session.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
			return s.UserID == winner.ID
		})).Return(nil)
		sc.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.OAuthLogin(context.Background(), entity.ProviderGoogle, &request.OAuthLoginRequest{
			Token: "provider-token",
			Email: "jane@example.com",
		}, ClientInfo{})
		require.NoError(t, err)
		require.Equal(t, winner.ID.String(), resp.User.ID)
		mocks.session.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	t.Run("opens and caches session", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		user := activeUser(t, "secret1")

		mocks.user.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		mocks.session.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
			return s.UserID == user.ID && s.ExpiresAt.Equal(fixedNow().Add(24*time.Hour))
		})).Return(nil)
		sc.On("Set", mock.Anything, mock.Anything, mock.MatchedBy(func(e *cache.SessionEntry) bool {
			return e.UserID == user.ID && e.Role == "customer"
		})).Return(nil)

		resp, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    user.Email,
			Password: "secret1",
		}, ClientInfo{UserAgent: "test"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, user.ID.String(), resp.User.ID)
		sc.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		user := activeUser(t, "secret1")
		mocks.user.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    user.Email,
			Password: "wrong-password",
		}, ClientInfo{})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		mocks.session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		mocks.user.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "ghost@example.com",
			Password: "secret1",
		}, ClientInfo{})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		user := activeUser(t, "secret1")
		user.IsActive = false
		mocks.user.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    user.Email,
			Password: "secret1",
		}, ClientInfo{})
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes and evicts", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		mocks.session.On("Revoke", mock.Anything, "tok").Return(nil)
		sc.On("Delete", mock.Anything, "tok").Return(nil)

		require.NoError(t, svc.Logout(context.Background(), "tok"))
		sc.AssertExpectations(t)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, mocks, _ := newTestAuthService(t)
		mocks.session.On("Revoke", mock.Anything, "tok").Return(repository.ErrSessionNotFound)

		err := svc.Logout(context.Background(), "tok")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("cache hit skips database", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		entry := &cache.SessionEntry{UserID: uuid.New(), Role: "admin"}
		sc.On("Get", mock.Anything, "tok").Return(entry, nil)

		got, err := svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		require.Same(t, entry, got)
		mocks.session.AssertNotCalled(t, "FindValidSession", mock.Anything, mock.Anything)
	})

	t.Run("cache miss back-fills from database", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		userID := uuid.New()
		sc.On("Get", mock.Anything, "tok").Return(nil, nil)
		mocks.session.On("FindValidSession", mock.Anything, "tok").Return(&entity.Session{
			UserID:    userID,
			UserRole:  entity.RoleCustomer,
			UserEmail: "jane@example.com",
			ExpiresAt: fixedNow().Add(time.Hour),
		}, nil)
		sc.On("Set", mock.Anything, "tok", mock.Anything).Return(nil)

		got, err := svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, userID, got.UserID)
		require.Equal(t, "jane@example.com", got.Email)
		sc.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, mocks, sc := newTestAuthService(t)
		sc.On("Get", mock.Anything, "tok").Return(nil, nil)
		mocks.session.On("FindValidSession", mock.Anything, "tok").Return(nil, nil)

		got, err := svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		require.Nil(t, got)
	})
}
