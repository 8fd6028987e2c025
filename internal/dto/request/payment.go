package request

type CreatePaymentRequest struct {
	BookingID      string   `json:"booking_id" validate:"required,max=64"`
	PaymentMethod  string   `json:"payment_method" validate:"required,max=50"`
	CardholderName string   `json:"cardholder_name" validate:"required,max=255"`
	CardLastFour   string   `json:"card_last_four" validate:"required,len=4,number"`
	Amount         *float64 `json:"amount" validate:"required,gte=0"`
	Status         string   `json:"status" validate:"required,oneof=completed pending failed"`
	BillingAddress string   `json:"billing_address" validate:"required,max=255"`
	City           string   `json:"city" validate:"required,max=100"`
	ZipCode        string   `json:"zip_code" validate:"required,max=20"`
	Country        string   `json:"country" validate:"required,max=100"`
	UserEmail      string   `json:"user_email,omitempty" validate:"omitempty,email"`
}

type VerifyPaymentRequest struct {
	PaymentID string  `json:"payment_id" validate:"required,uuid"`
	Verified  *bool   `json:"verified" validate:"required"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
