package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}

func newTestPaymentService(t *testing.T) (*paymentService, *repoMocks, *mockNotifier, *mockStore) {
	t.Helper()
	repo, mocks := newRepoMocks()
	n := &mockNotifier{}
	store := &mockStore{}
	return &paymentService{
		repo:     repo,
		store:    store,
		notifier: n,
		log:      zap.NewNop(),
		now:      fixedNow,
	}, mocks, n, store
}

func paymentRequest(status string) *request.CreatePaymentRequest {
	amount := 300.0
	return &request.CreatePaymentRequest{
		BookingID:      "BK1",
		PaymentMethod:  "card",
		CardholderName: "Jane Guest",
		CardLastFour:   "4242",
		Amount:         &amount,
		Status:         status,
		BillingAddress: "1 Main St",
		City:           "Springfield",
		ZipCode:        "12345",
		Country:        "US",
		UserEmail:      "jane@example.com",
	}
}

func TestCreatePayment_CompletedMarksBookingPaid(t *testing.T) {
	svc, mocks, n, _ := newTestPaymentService(t)
	booking := &entity.Booking{Reference: "BK1", PaidStatus: entity.PaidStatusUnpaid}

	mocks.booking.On("FindByReference", mock.Anything, "BK1").Return(booking, nil)
	mocks.payment.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)
	mocks.booking.On("UpdatePaidStatus", mock.Anything, "BK1", entity.PaidStatusPaid).Return(nil)
	n.On("NotifyPaymentReceived", mock.Anything, booking, mock.Anything).Return(nil)

	resp, err := svc.CreatePayment(context.Background(), paymentRequest("completed"))
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusCompleted, resp.Status)
	require.NotEmpty(t, resp.TransactionID)
	require.Equal(t, entity.PaidStatusPaid, booking.PaidStatus)

	mocks.booking.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestCreatePayment_PendingLeavesBookingUnpaid(t *testing.T) {
	svc, mocks, n, _ := newTestPaymentService(t)

	mocks.booking.On("FindByReference", mock.Anything, "BK1").Return(&entity.Booking{Reference: "BK1"}, nil)
	mocks.payment.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreatePayment(context.Background(), paymentRequest("pending"))
	require.NoError(t, err)

	mocks.booking.AssertNotCalled(t, "UpdatePaidStatus", mock.Anything, mock.Anything, mock.Anything)
	n.AssertNotCalled(t, "NotifyPaymentReceived", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePayment_UnknownBooking(t *testing.T) {
	svc, mocks, _, _ := newTestPaymentService(t)
	mocks.booking.On("FindByReference", mock.Anything, "BK1").Return(nil, nil)

	_, err := svc.CreatePayment(context.Background(), paymentRequest("completed"))
	require.ErrorIs(t, err, ErrNotFound)
	mocks.payment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePayment_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	_, err := svc.CreatePayment(context.Background(), paymentRequest("settled"))
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetBookingPayments_Empty(t *testing.T) {
	svc, mocks, _, _ := newTestPaymentService(t)
	mocks.payment.On("FindByBookingRef", mock.Anything, "BK1").Return([]*entity.Payment{}, nil)

	_, err := svc.GetBookingPayments(context.Background(), "BK1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserPayments_RequiresEmail(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	_, err := svc.GetUserPayments(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUploadProof(t *testing.T) {
	owner := uuid.New()

	t.Run("stores proof and records pending payment", func(t *testing.T) {
		svc, mocks, n, store := newTestPaymentService(t)
		booking := &entity.Booking{Reference: "BK1", UserID: &owner, Total: 300, Email: "jane@example.com"}

		mocks.booking.On("FindByReference", mock.Anything, "BK1").Return(booking, nil)
		store.On("Save", mock.Anything, proofFolder, ".png", pngHeader).
			Return(&storage.StoredFile{Key: "payment-proofs/abc.png"}, nil)
		mocks.payment.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Status == entity.PaymentStatusPendingVerification &&
				p.PaymentMethod == entity.PaymentMethodBankTransfer &&
				p.Amount == 300 &&
				p.ProofFile != nil && *p.ProofFile == "payment-proofs/abc.png"
		})).Return(nil)
		n.On("NotifyPaymentProofReceived", mock.Anything, booking, mock.Anything).Return(nil)

		resp, err := svc.UploadProof(context.Background(), owner, "BK1", pngHeader)
		require.NoError(t, err)
		require.NotNil(t, resp.ProofURL)
		require.Equal(t, "https://files.example.com/payment-proofs/abc.png", *resp.ProofURL)

		mocks.payment.AssertExpectations(t)
		n.AssertExpectations(t)
	})

	t.Run("rejects non-image", func(t *testing.T) {
		svc, mocks, _, store := newTestPaymentService(t)
		mocks.booking.On("FindByReference", mock.Anything, "BK1").
			Return(&entity.Booking{Reference: "BK1", UserID: &owner}, nil)

		_, err := svc.UploadProof(context.Background(), owner, "BK1", []byte("%PDF-1.4 not an image"))
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "proof")
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign booking", func(t *testing.T) {
		svc, mocks, _, _ := newTestPaymentService(t)
		mocks.booking.On("FindByReference", mock.Anything, "BK1").
			Return(&entity.Booking{Reference: "BK1"}, nil)

		_, err := svc.UploadProof(context.Background(), owner, "BK1", pngHeader)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("removes stored file when insert fails", func(t *testing.T) {
		svc, mocks, _, store := newTestPaymentService(t)
		mocks.booking.On("FindByReference", mock.Anything, "BK1").
			Return(&entity.Booking{Reference: "BK1", UserID: &owner}, nil)
		store.On("Save", mock.Anything, proofFolder, ".png", pngHeader).
			Return(&storage.StoredFile{Key: "payment-proofs/x.png"}, nil)
		mocks.payment.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		store.On("Delete", mock.Anything, "payment-proofs/x.png").Return(nil)

		_, err := svc.UploadProof(context.Background(), owner, "BK1", pngHeader)
		require.Error(t, err)
		store.AssertExpectations(t)
	})
}

func TestVerifyProof(t *testing.T) {
	owner := uuid.New()
	yes, no := true, false

	pending := func() *entity.Payment {
		return &entity.Payment{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			BookingRef:   "BK1",
			Amount:       300,
			Status:       entity.PaymentStatusPendingVerification,
		}
	}

	t.Run("approve marks booking paid", func(t *testing.T) {
		svc, mocks, n, _ := newTestPaymentService(t)
		p := pending()
		booking := &entity.Booking{Reference: "BK1", UserID: &owner}

		mocks.payment.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		mocks.booking.On("FindByReference", mock.Anything, "BK1").Return(booking, nil)
		mocks.payment.On("Update", mock.Anything, p).Return(nil)
		mocks.booking.On("UpdatePaidStatus", mock.Anything, "BK1", entity.PaidStatusPaid).Return(nil)
		n.On("NotifyPaymentVerified", mock.Anything, booking, p).Return(nil)

		resp, err := svc.VerifyProof(context.Background(), &request.VerifyPaymentRequest{
			PaymentID: p.ID.String(),
			Verified:  &yes,
		})
		require.NoError(t, err)
		require.Equal(t, entity.PaymentStatusVerified, resp.Status)
		require.NotNil(t, p.VerifiedAt)
		n.AssertExpectations(t)
	})

	t.Run("reject keeps booking unpaid", func(t *testing.T) {
		svc, mocks, n, _ := newTestPaymentService(t)
		p := pending()
		booking := &entity.Booking{Reference: "BK1", UserID: &owner}
		comment := "Blurry image"

		mocks.payment.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		mocks.booking.On("FindByReference", mock.Anything, "BK1").Return(booking, nil)
		mocks.payment.On("Update", mock.Anything, p).Return(nil)
		n.On("NotifyPaymentRejected", mock.Anything, booking, &comment).Return(nil)

		resp, err := svc.VerifyProof(context.Background(), &request.VerifyPaymentRequest{
			PaymentID: p.ID.String(),
			Verified:  &no,
			Comment:   &comment,
		})
		require.NoError(t, err)
		require.Equal(t, entity.PaymentStatusRejected, resp.Status)
		require.Nil(t, p.VerifiedAt)
		mocks.booking.AssertNotCalled(t, "UpdatePaidStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already reviewed", func(t *testing.T) {
		svc, mocks, _, _ := newTestPaymentService(t)
		p := pending()
		p.Status = entity.PaymentStatusVerified
		mocks.payment.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.VerifyProof(context.Background(), &request.VerifyPaymentRequest{
			PaymentID: p.ID.String(),
			Verified:  &yes,
		})
		require.ErrorIs(t, err, ErrInvalidState)
	})
}
