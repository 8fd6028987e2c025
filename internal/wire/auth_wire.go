package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth routeAuth) {
	// ==================== PUBLIC ROUTES (rate limited) ====================
	r.Group(func(r chi.Router) {
		r.Use(auth.limit)

		r.Post("/api/users/register", authHandler.Register)
		r.Post("/api/register", authHandler.Register)

		r.Post("/api/users/login", authHandler.Login)
		r.Post("/api/login", authHandler.Login)

		// POST /api/auth/{provider} - find-or-create by email, issue a session
		r.Post("/api/auth/google", authHandler.GoogleLogin)
		r.Post("/api/auth/microsoft", authHandler.MicrosoftLogin)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth.required)

		r.Post("/api/logout", authHandler.Logout)
		r.Post("/api/users/logout", authHandler.Logout)
	})
}
