package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, auth routeAuth) {
	// ==================== OPTIONAL AUTH ROUTES ====================
	// Guests may book without an account; a token links the booking.
	r.Group(func(r chi.Router) {
		r.Use(auth.optional)

		r.Post("/api/bookings/create", bookingHandler.CreateBooking)
		r.Post("/api/booking", bookingHandler.CreateBooking)
	})

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/bookings/{bookingId}", bookingHandler.GetBooking)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth.required)

		r.Get("/api/my-bookings", bookingHandler.GetUserBookings)
		r.Post("/api/bookings/{bookingId}/cancel", bookingHandler.CancelBooking)
	})
}
