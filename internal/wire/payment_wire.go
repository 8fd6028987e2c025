package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, auth routeAuth) {
	// ==================== OPTIONAL AUTH ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth.optional)

		r.Post("/api/payments/create", paymentHandler.CreatePayment)
		// Falls back to the caller's email when ?email= is absent
		r.Get("/api/my-payments", paymentHandler.GetUserPayments)
	})

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/payments/booking/{bookingId}", paymentHandler.GetBookingPayments)
	r.Get("/api/payments/{transactionId}", paymentHandler.GetPayment)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth.required)

		r.Post("/api/payments/proof", paymentHandler.UploadProof)
	})
}
