package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/storage"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const proofFolder = "payment-proofs"

type PaymentService interface {
	CreatePayment(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	GetBookingPayments(ctx context.Context, bookingRef string) ([]response.PaymentResponse, error)
	GetUserPayments(ctx context.Context, email string) ([]response.PaymentResponse, error)
	GetPayment(ctx context.Context, transactionID string) (*response.PaymentResponse, error)

	// Bank transfer proofs
	UploadProof(ctx context.Context, userID uuid.UUID, bookingRef string, data []byte) (*response.PaymentResponse, error)
	VerifyProof(ctx context.Context, req *request.VerifyPaymentRequest) (*response.PaymentResponse, error)
	GetPendingVerification(ctx context.Context) ([]response.PendingPaymentItem, error)
}

type paymentService struct {
	repo     *repository.Repository
	store    storage.FileStore
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewPaymentService(repo *repository.Repository, store storage.FileStore, notifier Notifier, m *metrics.Metrics, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		store:    store,
		notifier: notifier,
		metrics:  m,
		log:      log.With(zap.String("service", "payment")),
		now:      time.Now,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Create payment validation failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	payment := &entity.Payment{
		BaseNoDelete:   entity.NewBaseNoDelete(now),
		BookingRef:     req.BookingID,
		TransactionID:  utils.GenerateTransactionID(now),
		PaymentMethod:  req.PaymentMethod,
		CardholderName: &req.CardholderName,
		CardLastFour:   &req.CardLastFour,
		Amount:         *req.Amount,
		Status:         entity.PaymentStatus(req.Status),
		BillingAddress: &req.BillingAddress,
		City:           &req.City,
		ZipCode:        &req.ZipCode,
		Country:        &req.Country,
		UserEmail:      optional(strings.TrimSpace(req.UserEmail)),
	}

	// 2. Record payment and settle the booking together
	var booking *entity.Booking
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		booking, err = tx.Booking.FindByReference(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return newError(ErrNotFound, "Booking not found")
		}

		if err := tx.Payment.Create(ctx, payment); err != nil {
			return err
		}

		if payment.Status == entity.PaymentStatusCompleted {
			if err := tx.Booking.UpdatePaidStatus(ctx, booking.Reference, entity.PaidStatusPaid); err != nil {
				return err
			}
			booking.PaidStatus = entity.PaidStatusPaid
		}
		return nil
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		s.log.Error("Failed to create payment", zap.Error(err), zap.String("booking_ref", req.BookingID))
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.metrics.PaymentCreated(string(payment.Status))
	s.log.Info("Payment recorded",
		zap.String("transaction_id", payment.TransactionID),
		zap.String("booking_ref", payment.BookingRef),
		zap.String("status", string(payment.Status)),
	)

	// 3. Notify the owner
	if payment.Status == entity.PaymentStatusCompleted {
		if err := s.notifier.NotifyPaymentReceived(ctx, booking, payment); err != nil {
			s.log.Warn("Failed to create payment notification", zap.Error(err))
		}
	}

	resp := response.PaymentToResponse(payment, s.store.URL)
	return &resp, nil
}

func (s *paymentService) GetBookingPayments(ctx context.Context, bookingRef string) ([]response.PaymentResponse, error) {
	payments, err := s.repo.Payment.FindByBookingRef(ctx, bookingRef)
	if err != nil {
		s.log.Error("Failed to get booking payments", zap.Error(err), zap.String("booking_ref", bookingRef))
		return nil, fmt.Errorf("get booking payments: %w", err)
	}
	if len(payments) == 0 {
		return nil, newError(ErrNotFound, "No payments found for this booking")
	}

	return response.PaymentsToResponse(payments, s.store.URL), nil
}

func (s *paymentService) GetUserPayments(ctx context.Context, email string) ([]response.PaymentResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newError(ErrInvalidState, "Email required")
	}

	payments, err := s.repo.Payment.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to get user payments", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("get user payments: %w", err)
	}

	return response.PaymentsToResponse(payments, s.store.URL), nil
}

func (s *paymentService) GetPayment(ctx context.Context, transactionID string) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByTransactionID(ctx, transactionID)
	if err != nil {
		s.log.Error("Failed to get payment", zap.Error(err), zap.String("transaction_id", transactionID))
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if payment == nil {
		return nil, newError(ErrNotFound, "Payment not found")
	}

	resp := response.PaymentToResponse(payment, s.store.URL)
	return &resp, nil
}

func (s *paymentService) UploadProof(ctx context.Context, userID uuid.UUID, bookingRef string, data []byte) (*response.PaymentResponse, error) {
	// 1. Booking must belong to the caller
	if strings.TrimSpace(bookingRef) == "" {
		return nil, fieldError("booking_id", "This field is required")
	}

	booking, err := s.repo.Booking.FindByReference(ctx, bookingRef)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}
	if !booking.IsOwnedBy(userID) {
		return nil, newError(ErrForbidden, "You can only pay for your own bookings")
	}

	// 2. File must be an image
	ext, err := storage.DetectImage(data)
	if err != nil {
		return nil, fieldError("proof", err.Error())
	}

	// 3. Store file, then record payment
	file, err := s.store.Save(ctx, proofFolder, ext, data)
	if err != nil {
		s.log.Error("Failed to store payment proof", zap.Error(err), zap.String("booking_ref", bookingRef))
		return nil, fmt.Errorf("store payment proof: %w", err)
	}

	now := s.now()
	payment := &entity.Payment{
		BaseNoDelete:  entity.NewBaseNoDelete(now),
		BookingRef:    booking.Reference,
		TransactionID: utils.GenerateTransactionID(now),
		PaymentMethod: entity.PaymentMethodBankTransfer,
		Amount:        booking.Total,
		Status:        entity.PaymentStatusPendingVerification,
		UserEmail:     &booking.Email,
		ProofFile:     &file.Key,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to record payment proof", zap.Error(err), zap.String("booking_ref", bookingRef))
		if delErr := s.store.Delete(ctx, file.Key); delErr != nil {
			s.log.Warn("Failed to remove orphaned proof", zap.Error(delErr), zap.String("key", file.Key))
		}
		return nil, fmt.Errorf("record payment proof: %w", err)
	}

	s.metrics.PaymentCreated(string(payment.Status))
	s.log.Info("Payment proof uploaded",
		zap.String("booking_ref", bookingRef),
		zap.String("payment_id", payment.ID.String()))

	if err := s.notifier.NotifyPaymentProofReceived(ctx, booking, payment); err != nil {
		s.log.Warn("Failed to create proof notification", zap.Error(err))
	}

	resp := response.PaymentToResponse(payment, s.store.URL)
	return &resp, nil
}

func (s *paymentService) VerifyProof(ctx context.Context, req *request.VerifyPaymentRequest) (*response.PaymentResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}
	paymentID := uuid.MustParse(req.PaymentID)

	// 2. Apply decision to payment and booking
	var payment *entity.Payment
	var booking *entity.Booking
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		payment, err = tx.Payment.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return newError(ErrNotFound, "Payment not found")
		}
		if payment.Status != entity.PaymentStatusPendingVerification {
			return newError(ErrInvalidState, "Payment is not awaiting verification")
		}

		booking, err = tx.Booking.FindByReference(ctx, payment.BookingRef)
		if err != nil {
			return err
		}

		now := s.now()
		payment.VerifiedComment = req.Comment
		payment.UpdatedAt = now
		if *req.Verified {
			payment.Status = entity.PaymentStatusVerified
			payment.VerifiedAt = &now
		} else {
			payment.Status = entity.PaymentStatusRejected
		}

		if err := tx.Payment.Update(ctx, payment); err != nil {
			return err
		}

		if *req.Verified && booking != nil {
			if err := tx.Booking.UpdatePaidStatus(ctx, booking.Reference, entity.PaidStatusPaid); err != nil {
				return err
			}
			booking.PaidStatus = entity.PaidStatusPaid
		}
		return nil
	})
	if err != nil {
		if isClientError(err) {
			return nil, err
		}
		s.log.Error("Failed to verify payment", zap.Error(err), zap.String("payment_id", req.PaymentID))
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	s.log.Info("Payment proof reviewed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)))

	// 3. Tell the owner
	if booking != nil {
		var notifyErr error
		if *req.Verified {
			notifyErr = s.notifier.NotifyPaymentVerified(ctx, booking, payment)
		} else {
			notifyErr = s.notifier.NotifyPaymentRejected(ctx, booking, req.Comment)
		}
		if notifyErr != nil {
			s.log.Warn("Failed to create verification notification", zap.Error(notifyErr))
		}
	}

	resp := response.PaymentToResponse(payment, s.store.URL)
	return &resp, nil
}

func (s *paymentService) GetPendingVerification(ctx context.Context) ([]response.PendingPaymentItem, error) {
	payments, err := s.repo.Payment.FindPendingVerification(ctx)
	if err != nil {
		s.log.Error("Failed to get pending payments", zap.Error(err))
		return nil, fmt.Errorf("get pending payments: %w", err)
	}

	return response.PaymentsToPendingItems(payments, s.store.URL), nil
}
