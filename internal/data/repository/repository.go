package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned by Revoke when no active session matches.
	ErrSessionNotFound = errors.New("session not found or already revoked")
	// ErrNoRowsAffected is returned by updates and deletes that matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Room         RoomRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Notification NotificationRepository
	Review       ReviewRepository
	Report       ReportRepository

	// Tx runs a unit of work against a transaction-bound copy of the repositories.
	Tx Transactor
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositorySet(db, log)
	repo.Tx = &pgxTransactor{db: db, log: log}
	return repo
}

func newRepositorySet(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Room:         NewRoomRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Report:       NewReportRepository(db, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := newRepositorySet(database.WrapTx(tx), t.log)
	txRepo.Tx = nestedTransactor{repo: txRepo}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// nestedTransactor joins the transaction that is already open.
type nestedTransactor struct {
	repo *Repository
}

func (n nestedTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return fn(n.repo)
}
