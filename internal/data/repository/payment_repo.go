package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	FindByBookingRef(ctx context.Context, bookingRef string) ([]*entity.Payment, error)
	FindByEmail(ctx context.Context, email string) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error

	// Business queries
	FindPendingVerification(ctx context.Context) ([]*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, transaction_id, payment_method, cardholder_name,
		       card_last_four, amount, status, billing_address, city, zip_code, country,
		       user_email, proof_file, verified_at, verified_comment, created_at, updated_at`

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingRef,
		&payment.TransactionID,
		&payment.PaymentMethod,
		&payment.CardholderName,
		&payment.CardLastFour,
		&payment.Amount,
		&payment.Status,
		&payment.BillingAddress,
		&payment.City,
		&payment.ZipCode,
		&payment.Country,
		&payment.UserEmail,
		&payment.ProofFile,
		&payment.VerifiedAt,
		&payment.VerifiedComment,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) scanAll(rows pgx.Rows) ([]*entity.Payment, error) {
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, transaction_id, payment_method, cardholder_name,
		                      card_last_four, amount, status, billing_address, city, zip_code,
		                      country, user_email, proof_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingRef,
		payment.TransactionID,
		payment.PaymentMethod,
		payment.CardholderName,
		payment.CardLastFour,
		payment.Amount,
		payment.Status,
		payment.BillingAddress,
		payment.City,
		payment.ZipCode,
		payment.Country,
		payment.UserEmail,
		payment.ProofFile,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_ref", payment.BookingRef),
			zap.String("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingRef, err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find payment by transaction ID %s: %w", transactionID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingRef(ctx context.Context, bookingRef string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, bookingRef)
	if err != nil {
		r.log.Error("Failed to find payments by booking",
			zap.Error(err),
			zap.String("booking_ref", bookingRef),
		)
		return nil, fmt.Errorf("find payments by booking %s: %w", bookingRef, err)
	}

	return r.scanAll(rows)
}

// FindByEmail matches the payer email case-insensitively, newest first.
func (r *paymentRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE LOWER(user_email) = LOWER($1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to find payments by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find payments by email %s: %w", email, err)
	}

	return r.scanAll(rows)
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, verified_at = $3, verified_comment = $4, proof_file = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.Status,
		payment.VerifiedAt,
		payment.VerifiedComment,
		payment.ProofFile,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), ErrNoRowsAffected)
	}

	return nil
}

func (r *paymentRepository) FindPendingVerification(ctx context.Context) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE status = 'pending_verification'
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find pending payments", zap.Error(err))
		return nil, fmt.Errorf("find pending payments: %w", err)
	}

	return r.scanAll(rows)
}
