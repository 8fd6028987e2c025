package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusPending             PaymentStatus = "pending"
	PaymentStatusCompleted           PaymentStatus = "completed"
	PaymentStatusFailed              PaymentStatus = "failed"
	PaymentStatusPendingVerification PaymentStatus = "pending_verification"
	PaymentStatusVerified            PaymentStatus = "verified"
	PaymentStatusRejected            PaymentStatus = "rejected"
)

const PaymentMethodBankTransfer = "bank_transfer"

type Payment struct {
	BaseNoDelete
	BookingRef      string        `db:"booking_id"`
	TransactionID   string        `db:"transaction_id"`
	PaymentMethod   string        `db:"payment_method"`
	CardholderName  *string       `db:"cardholder_name"`
	CardLastFour    *string       `db:"card_last_four"`
	Amount          float64       `db:"amount"`
	Status          PaymentStatus `db:"status"`
	BillingAddress  *string       `db:"billing_address"`
	City            *string       `db:"city"`
	ZipCode         *string       `db:"zip_code"`
	Country         *string       `db:"country"`
	UserEmail       *string       `db:"user_email"`
	ProofFile       *string       `db:"proof_file"`
	VerifiedAt      *time.Time    `db:"verified_at"`
	VerifiedComment *string       `db:"verified_comment"`
}
