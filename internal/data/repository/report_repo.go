package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

// ReportRepository holds the read-only aggregates behind the admin dashboard.
type ReportRepository interface {
	TotalRevenue(ctx context.Context) (float64, error)
	CountBookings(ctx context.Context) (int64, error)
	AverageBookingValue(ctx context.Context) (float64, error)
	CountPendingVerification(ctx context.Context) (int64, error)
	BookingStatsSince(ctx context.Context, since time.Time) ([]entity.DailyBookingStat, error)
	RevenueByMethod(ctx context.Context) ([]entity.MethodRevenue, error)
	TopRoomTypes(ctx context.Context, limit int) ([]entity.RoomTypeStat, error)
	CustomerStats(ctx context.Context, limit, offset int) ([]*entity.CustomerStats, error)
	CountCustomers(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

// TotalRevenue sums verified and completed payments.
func (r *reportRepository) TotalRevenue(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::float8
		FROM payments
		WHERE status IN ('verified', 'completed')
	`

	var total float64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to sum revenue", zap.Error(err))
		return 0, fmt.Errorf("sum revenue: %w", err)
	}
	return total, nil
}

func (r *reportRepository) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *reportRepository) AverageBookingValue(ctx context.Context) (float64, error) {
	var avg float64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(AVG(total), 0)::float8 FROM bookings`).Scan(&avg); err != nil {
		r.log.Error("Failed to average booking value", zap.Error(err))
		return 0, fmt.Errorf("average booking value: %w", err)
	}
	return avg, nil
}

func (r *reportRepository) CountPendingVerification(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM payments WHERE status = 'pending_verification'`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count pending payments", zap.Error(err))
		return 0, fmt.Errorf("count pending payments: %w", err)
	}
	return count, nil
}

func (r *reportRepository) BookingStatsSince(ctx context.Context, since time.Time) ([]entity.DailyBookingStat, error) {
	query := `
		SELECT DATE(created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)::float8
		FROM bookings
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		r.log.Error("Failed to load booking stats", zap.Error(err))
		return nil, fmt.Errorf("booking stats since %s: %w", since.Format(time.DateOnly), err)
	}
	defer rows.Close()

	stats := []entity.DailyBookingStat{}
	for rows.Next() {
		var s entity.DailyBookingStat
		if err := rows.Scan(&s.Date, &s.Count, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan booking stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

func (r *reportRepository) RevenueByMethod(ctx context.Context) ([]entity.MethodRevenue, error) {
	query := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(amount), 0)::float8
		FROM payments
		WHERE status IN ('verified', 'completed')
		GROUP BY payment_method
		ORDER BY 3 DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load revenue by method", zap.Error(err))
		return nil, fmt.Errorf("revenue by method: %w", err)
	}
	defer rows.Close()

	revenue := []entity.MethodRevenue{}
	for rows.Next() {
		var m entity.MethodRevenue
		if err := rows.Scan(&m.Method, &m.Count, &m.Total); err != nil {
			return nil, fmt.Errorf("scan method revenue: %w", err)
		}
		revenue = append(revenue, m)
	}

	return revenue, rows.Err()
}

func (r *reportRepository) TopRoomTypes(ctx context.Context, limit int) ([]entity.RoomTypeStat, error) {
	query := `
		SELECT room_type, COUNT(*)
		FROM bookings
		GROUP BY room_type
		ORDER BY 2 DESC, room_type
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to load top room types", zap.Error(err))
		return nil, fmt.Errorf("top room types: %w", err)
	}
	defer rows.Close()

	top := []entity.RoomTypeStat{}
	for rows.Next() {
		var s entity.RoomTypeStat
		if err := rows.Scan(&s.RoomType, &s.Count); err != nil {
			return nil, fmt.Errorf("scan room type stat: %w", err)
		}
		top = append(top, s)
	}

	return top, rows.Err()
}

// CustomerStats lists non-admin users with their booking count and the sum of
// their paid booking totals.
func (r *reportRepository) CustomerStats(ctx context.Context, limit, offset int) ([]*entity.CustomerStats, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password, u.phone, u.provider, u.provider_id, u.role,
		       u.is_active, u.created_at, u.updated_at, u.deleted_at,
		       COUNT(b.id),
		       COALESCE(SUM(b.total) FILTER (WHERE b.paid_status = 'paid'), 0)::float8
		FROM users u
		LEFT JOIN bookings b ON b.user_id = u.id
		WHERE u.role <> 'admin' AND u.deleted_at IS NULL
		GROUP BY u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to load customer stats", zap.Error(err))
		return nil, fmt.Errorf("customer stats: %w", err)
	}
	defer rows.Close()

	var customers []*entity.CustomerStats
	for rows.Next() {
		var c entity.CustomerStats
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.PasswordHash,
			&c.Phone,
			&c.Provider,
			&c.ProviderID,
			&c.Role,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.DeletedAt,
			&c.TotalBookings,
			&c.TotalSpent,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer stats: %w", err)
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}

func (r *reportRepository) CountCustomers(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE role <> 'admin' AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}
