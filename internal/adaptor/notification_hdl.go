package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

const defaultHeartbeat = 15 * time.Second

type NotificationHandler struct {
	service   usecase.NotificationService
	hub       *notify.Hub
	heartbeat time.Duration
	log       *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, hub *notify.Hub, heartbeat time.Duration, log *zap.Logger) *NotificationHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &NotificationHandler{
		service:   service,
		hub:       hub,
		heartbeat: heartbeat,
		log:       log.With(zap.String("handler", "notification")),
	}
}

// GetNotifications handles GET /api/notifications?status=
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	list, unread, err := h.service.GetNotifications(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.log, err, "get notifications")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{
		"notifications": list,
		"unread_count":  unread,
	})
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	unread, err := h.service.GetUnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "count unread notifications")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"unread_count": unread})
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "Notification not found")
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", nil)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "mark all notifications read")
		return
	}

	utils.ResponseSuccess(w, "All notifications marked as read", utils.Payload{"updated": updated})
}

// DeleteNotification handles DELETE /api/notifications/{id}
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "Notification not found")
	if !ok {
		return
	}

	if err := h.service.DeleteNotification(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "delete notification")
		return
	}

	utils.ResponseSuccess(w, "Notification deleted", nil)
}

// Stream handles GET /api/notifications/stream. It replays unread
// notifications, then pushes new ones until the client goes away or the
// server starts draining.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.ResponseInternalError(w, "Streaming unsupported")
		return
	}

	// 1. Subscribe before loading history so nothing slips between the two
	client := notify.NewClient(userID)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	history, _, err := h.service.GetNotifications(r.Context(), userID, "unread")
	if err != nil {
		handleServiceError(w, h.log, err, "load notification history")
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	// 2. Replay history oldest first
	fmt.Fprint(w, "retry: 5000\n\n")
	sent := make(map[string]struct{}, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		if err := writeEvent(w, history[i]); err != nil {
			return
		}
		sent[history[i].ID] = struct{}{}
	}
	flusher.Flush()

	h.log.Debug("Notification stream opened", zap.String("user_id", userID.String()))

	// 3. Live events and heartbeats
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.log.Debug("Notification stream closed", zap.String("user_id", userID.String()))
			return

		case <-utils.ShutdownSignal(r.Context()):
			h.log.Debug("Notification stream closed for shutdown", zap.String("user_id", userID.String()))
			return

		case n := <-client.Ch:
			resp := response.NotificationToResponse(&n)
			if _, dup := sent[resp.ID]; dup {
				continue
			}
			if err := writeEvent(w, resp); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, n response.NotificationResponse) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: notification\ndata: %s\n\n", n.ID, data)
	return err
}
