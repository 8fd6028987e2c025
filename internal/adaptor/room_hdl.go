package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListRooms(r.Context(), parseRoomQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

// GetRoom handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Room not found")
	if !ok {
		return
	}

	room, err := h.service.GetRoom(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"data": room})
}

// CheckAvailability handles POST /api/rooms/check-availability
func (h *RoomHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.CheckAvailabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	message := "Room is available for the selected dates"
	if !result.Available {
		message = "Room is not available for the selected dates"
	}
	utils.ResponseSuccess(w, message, utils.Payload{
		"available": result.Available,
		"data":      result,
	})
}

// GetCalendar handles GET /api/rooms/{id}/calendar?month=&year=
func (h *RoomHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Room not found")
	if !ok {
		return
	}

	q := r.URL.Query()
	calendar, err := h.service.GetCalendar(r.Context(), id,
		utils.ParseInt(q.Get("month"), 0),
		utils.ParseInt(q.Get("year"), 0),
	)
	if err != nil {
		handleServiceError(w, h.log, err, "get room calendar")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"data": calendar})
}

// ==================== ADMIN ====================

// ListAdminRooms handles GET /api/admin/rooms
func (h *RoomHandler) ListAdminRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListAdminRooms(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list admin rooms")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"data": rooms})
}

// CreateRoom handles POST /api/admin/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created successfully", utils.Payload{"data": room})
}

// UpdateRoom handles PUT /api/admin/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Room not found")
	if !ok {
		return
	}

	var req request.UpdateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated successfully", utils.Payload{"data": room})
}

// DeleteRoom handles DELETE /api/admin/rooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Room not found")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "Room deleted successfully", nil)
}

// UploadImage handles POST /api/admin/rooms/{id}/image (multipart: image)
func (h *RoomHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Room not found")
	if !ok {
		return
	}

	data, ok := readImage(w, r, "image")
	if !ok {
		return
	}

	room, err := h.service.UploadImage(r.Context(), id, data)
	if err != nil {
		handleServiceError(w, h.log, err, "upload room image")
		return
	}

	utils.ResponseSuccess(w, "Room image uploaded successfully", utils.Payload{"data": room})
}

// BulkUpdatePrices handles PUT /api/admin/rooms/prices
func (h *RoomHandler) BulkUpdatePrices(w http.ResponseWriter, r *http.Request) {
	var req request.BulkPriceUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.service.BulkUpdatePrices(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk update prices")
		return
	}

	utils.ResponseSuccess(w, "Prices updated successfully", utils.Payload{"updated": updated})
}

// parseRoomQuery applies the price range only when both bounds are given.
func parseRoomQuery(q url.Values) request.RoomListQuery {
	query := request.RoomListQuery{
		RoomType:  q.Get("room_type"),
		Capacity:  utils.ParseInt(q.Get("capacity"), 0),
		Amenities: parseAmenities(q.Get("amenities")),
		Page:      utils.ParseInt(q.Get("page"), 1),
		PerPage:   utils.ParseInt(q.Get("per_page"), 0),
	}

	minPrice, maxPrice := utils.ParseFloat(q.Get("min_price")), utils.ParseFloat(q.Get("max_price"))
	if minPrice != nil && maxPrice != nil {
		query.MinPrice, query.MaxPrice = minPrice, maxPrice
	}

	return query
}

// parseAmenities accepts a JSON array or a comma separated list.
func parseAmenities(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var list []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil
		}
	} else {
		list = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(list))
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
