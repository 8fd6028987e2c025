package middleware

import (
	"context"
	"net/http"
	"strings"

	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a session token. It returns nil, nil when the token
// is unknown, revoked or expired.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*cache.SessionEntry, error)
}

// AuthSession rejects requests without a valid session token.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			token, ok := bearerToken(r)
			if !ok {
				if r.Header.Get("Authorization") == "" {
					utils.ResponseUnauthorized(w, "Missing authorization token")
				} else {
					utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				}
				return
			}

			// 2. Resolve session
			entry, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if entry == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			// 3. Attach user and token
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), token, entry)))
		})
	}
}

// OptionalAuth attaches the caller when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalAuth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			entry, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn("Optional auth lookup failed", zap.Error(err))
			}
			if entry == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), token, entry)))
		})
	}
}

// Admin must run after AuthSession.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role, _ := utils.GetRoleFromContext(r.Context()); role != "admin" {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withSession(ctx context.Context, token string, entry *cache.SessionEntry) context.Context {
	ctx = utils.SetUserContext(ctx, entry.UserID, entry.Role, entry.Email)
	return utils.SetTokenContext(ctx, token)
}

// bearerToken reads "Authorization: Bearer <token>". EventSource cannot set
// headers, so event-stream requests may pass ?token= instead.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
			if token := r.URL.Query().Get("token"); token != "" {
				return token, true
			}
		}
		return "", false
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
