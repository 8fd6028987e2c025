package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, reviewHandler *adaptor.ReviewHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", roomHandler.ListRooms)
		r.Post("/check-availability", roomHandler.CheckAvailability)
		r.Get("/{id}", roomHandler.GetRoom)
		r.Get("/{id}/calendar", roomHandler.GetCalendar)
		r.Get("/{id}/reviews", reviewHandler.GetRoomReviews)
	})
}
