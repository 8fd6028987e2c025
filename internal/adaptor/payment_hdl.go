package adaptor

import (
	"net/http"
	"strings"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePayment handles POST /api/payments/create
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment")
		return
	}

	utils.ResponseCreated(w, "Payment processed successfully", utils.Payload{
		"payment":        payment,
		"transaction_id": payment.TransactionID,
	})
}

// GetBookingPayments handles GET /api/payments/booking/{bookingId}
func (h *PaymentHandler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.GetBookingPayments(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking payments")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"payments": payments})
}

// GetUserPayments handles GET /api/my-payments?email= (optional auth)
func (h *PaymentHandler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		email, _ = utils.GetEmailFromContext(r.Context())
	}

	payments, err := h.service.GetUserPayments(r.Context(), email)
	if err != nil {
		handleServiceError(w, h.log, err, "get user payments")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"payments": payments})
}

// GetPayment handles GET /api/payments/{transactionId}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"payment": payment})
}

// UploadProof handles POST /api/payments/proof (protected, multipart: booking_id, proof)
func (h *PaymentHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	data, ok := readImage(w, r, "proof")
	if !ok {
		return
	}

	payment, err := h.service.UploadProof(r.Context(), userID, r.FormValue("booking_id"), data)
	if err != nil {
		handleServiceError(w, h.log, err, "upload payment proof")
		return
	}

	utils.ResponseCreated(w, "Payment proof uploaded successfully. Awaiting verification.", utils.Payload{
		"payment": utils.Payload{
			"id":        payment.ID,
			"status":    payment.Status,
			"proof_url": payment.ProofURL,
		},
	})
}

// VerifyProof handles POST /api/admin/payments/verify (admin)
func (h *PaymentHandler) VerifyProof(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.VerifyProof(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify payment")
		return
	}

	message := "Payment rejected"
	if req.Verified != nil && *req.Verified {
		message = "Payment verified successfully"
	}
	utils.ResponseSuccess(w, message, utils.Payload{"payment": payment})
}

// GetPendingVerification handles GET /api/admin/payments/pending (admin)
func (h *PaymentHandler) GetPendingVerification(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.GetPendingVerification(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get pending payments")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"data": payments})
}
