package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted successfully", utils.Payload{"data": review})
}

// GetRoomReviews handles GET /api/rooms/{id}/reviews (public)
func (h *ReviewHandler) GetRoomReviews(w http.ResponseWriter, r *http.Request) {
	roomID, ok := uuidParam(w, r, "id", "Room not found")
	if !ok {
		return
	}

	page, err := h.service.GetRoomReviews(r.Context(), roomID, utils.ParseInt(r.URL.Query().Get("page"), 1))
	if err != nil {
		handleServiceError(w, h.log, err, "get room reviews")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

// UpdateReview handles PUT /api/reviews/{id} (owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "id", "Review not found")
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReview(r.Context(), reviewID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", utils.Payload{"data": review})
}

// DeleteReview handles DELETE /api/reviews/{id} (owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "id", "Review not found")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), reviewID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}
