package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

// URLResolver turns a stored file key into a public URL.
type URLResolver func(key string) string

type PaymentResponse struct {
	ID              string               `json:"id"`
	BookingID       string               `json:"booking_id"`
	TransactionID   string               `json:"transaction_id"`
	PaymentMethod   string               `json:"payment_method"`
	CardholderName  *string              `json:"cardholder_name"`
	CardLastFour    *string              `json:"card_last_four"`
	Amount          float64              `json:"amount"`
	Status          entity.PaymentStatus `json:"status"`
	BillingAddress  *string              `json:"billing_address"`
	City            *string              `json:"city"`
	ZipCode         *string              `json:"zip_code"`
	Country         *string              `json:"country"`
	UserEmail       *string              `json:"user_email"`
	ProofURL        *string              `json:"proof_url,omitempty"`
	VerifiedAt      *time.Time           `json:"verified_at,omitempty"`
	VerifiedComment *string              `json:"verified_comment,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// PendingPaymentItem is a payment proof waiting for admin review.
type PendingPaymentItem struct {
	ID          string  `json:"id"`
	BookingID   string  `json:"booking_id"`
	Amount      float64 `json:"amount"`
	ProofURL    *string `json:"proof_url"`
	SubmittedAt string  `json:"submitted_at"`
}

func proofURL(p *entity.Payment, resolve URLResolver) *string {
	if p.ProofFile == nil || resolve == nil {
		return nil
	}
	u := resolve(*p.ProofFile)
	return &u
}

// Helper converters
func PaymentToResponse(p *entity.Payment, resolve URLResolver) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID.String(),
		BookingID:       p.BookingRef,
		TransactionID:   p.TransactionID,
		PaymentMethod:   p.PaymentMethod,
		CardholderName:  p.CardholderName,
		CardLastFour:    p.CardLastFour,
		Amount:          p.Amount,
		Status:          p.Status,
		BillingAddress:  p.BillingAddress,
		City:            p.City,
		ZipCode:         p.ZipCode,
		Country:         p.Country,
		UserEmail:       p.UserEmail,
		ProofURL:        proofURL(p, resolve),
		VerifiedAt:      p.VerifiedAt,
		VerifiedComment: p.VerifiedComment,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func PaymentsToResponse(payments []*entity.Payment, resolve URLResolver) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentToResponse(p, resolve))
	}
	return out
}

func PaymentsToPendingItems(payments []*entity.Payment, resolve URLResolver) []PendingPaymentItem {
	out := make([]PendingPaymentItem, 0, len(payments))
	for _, p := range payments {
		out = append(out, PendingPaymentItem{
			ID:          p.ID.String(),
			BookingID:   p.BookingRef,
			Amount:      p.Amount,
			ProofURL:    proofURL(p, resolve),
			SubmittedAt: p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out
}
