package adaptor

import (
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "User registered successfully", utils.Payload{"user": user})
}

// Login handles POST /api/users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", utils.Payload{
		"user":       auth.User,
		"token":      auth.Token,
		"expires_at": auth.ExpiresAt,
	})
}

// GoogleLogin handles POST /api/auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	h.oauthLogin(w, r, entity.ProviderGoogle)
}

// MicrosoftLogin handles POST /api/auth/microsoft
func (h *AuthHandler) MicrosoftLogin(w http.ResponseWriter, r *http.Request) {
	h.oauthLogin(w, r, entity.ProviderMicrosoft)
}

func (h *AuthHandler) oauthLogin(w http.ResponseWriter, r *http.Request, provider entity.AuthProvider) {
	var req request.OAuthLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	auth, err := h.service.OAuthLogin(r.Context(), provider, &req, clientInfo(r))
	if err != nil {
		handleServiceError(w, h.log, err, string(provider)+" login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", utils.Payload{
		"user":       auth.User,
		"token":      auth.Token,
		"expires_at": auth.ExpiresAt,
	})
}

// Logout handles POST /api/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logged out successfully", nil)
}
