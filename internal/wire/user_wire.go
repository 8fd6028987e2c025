package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, authHandler *adaptor.AuthHandler, auth routeAuth) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/user", func(r chi.Router) {
		r.Use(auth.required)

		r.Get("/", userHandler.GetProfile)
		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Post("/change-password", userHandler.ChangePassword)
		r.Get("/bookings-summary", userHandler.BookingsSummary)
		r.Post("/logout", authHandler.Logout)
	})
}
