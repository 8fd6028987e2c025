package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler, auth routeAuth) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(auth.required)

		r.Get("/", notificationHandler.GetNotifications)
		r.Get("/unread-count", notificationHandler.GetUnreadCount)
		r.Get("/stream", notificationHandler.Stream)
		r.Post("/read-all", notificationHandler.MarkAllRead)
		r.Post("/{id}/read", notificationHandler.MarkRead)
		r.Delete("/{id}", notificationHandler.DeleteNotification)
	})
}
