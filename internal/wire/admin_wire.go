package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, handler *adaptor.Handler, auth routeAuth) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(auth.required)
		r.Use(auth.admin)

		r.Get("/dashboard", handler.Admin.Dashboard)
		r.Get("/reports", handler.Admin.Reports)
		r.Get("/users", handler.Admin.ListCustomers)

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", handler.Room.ListAdminRooms)
			r.Post("/", handler.Room.CreateRoom)
			r.Put("/prices", handler.Room.BulkUpdatePrices)
			r.Put("/{id}", handler.Room.UpdateRoom)
			r.Delete("/{id}", handler.Room.DeleteRoom)
			r.Post("/{id}/image", handler.Room.UploadImage)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", handler.Admin.ListBookings)
			r.Put("/{bookingId}/status", handler.Admin.UpdateBookingStatus)
			r.Put("/{bookingId}/cancel", handler.Admin.CancelBooking)
		})

		r.Get("/payments/pending", handler.Payment.GetPendingVerification)
		r.Post("/payments/verify", handler.Payment.VerifyProof)
	})
}
