package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, auth routeAuth) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/reviews", func(r chi.Router) {
		r.Use(auth.required)

		r.Post("/", reviewHandler.CreateReview)
		// Owner only, enforced by the service
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
