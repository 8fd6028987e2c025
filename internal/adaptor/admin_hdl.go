package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"data": dashboard})
}

// Reports handles GET /api/admin/reports
func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.GetReports(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load reports")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"data": reports})
}

// ListBookings handles GET /api/admin/bookings?status=&paid_status=&page=
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.service.ListBookings(r.Context(), request.BookingListQuery{
		Status:     q.Get("status"),
		PaidStatus: q.Get("paid_status"),
		Page:       utils.ParseInt(q.Get("page"), 1),
	})
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

// UpdateBookingStatus handles PUT /api/admin/bookings/{bookingId}/status
func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), chi.URLParam(r, "bookingId"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated successfully", utils.Payload{"booking": booking})
}

// CancelBooking handles PUT /api/admin/bookings/{bookingId}/cancel
func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		handleServiceError(w, h.log, err, "admin cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", utils.Payload{
		"booking":       result.Booking,
		"refund_amount": result.RefundAmount,
	})
}

// ListCustomers handles GET /api/admin/users?page=
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListCustomers(r.Context(), utils.ParseInt(r.URL.Query().Get("page"), 1))
	if err != nil {
		handleServiceError(w, h.log, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}
