package response

import (
	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type DashboardResponse struct {
	TotalBookings   int64             `json:"total_bookings"`
	TotalRevenue    float64           `json:"total_revenue"`
	TotalUsers      int64             `json:"total_users"`
	TotalRooms      int64             `json:"total_rooms"`
	PendingPayments int64             `json:"pending_payments"`
	RecentBookings  []BookingListItem `json:"recent_bookings"`
}

type DailyBookingStat struct {
	Date    string  `json:"date"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type MethodRevenue struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int64   `json:"count"`
	Total         float64 `json:"total"`
}

type RoomTypeStat struct {
	RoomType string `json:"room_type"`
	Count    int64  `json:"count"`
}

type ReportsResponse struct {
	BookingStats        []DailyBookingStat `json:"booking_stats"`
	RevenueByMethod     []MethodRevenue    `json:"revenue_by_method"`
	TopRooms            []RoomTypeStat     `json:"top_rooms"`
	TotalRevenue        float64            `json:"total_revenue"`
	TotalBookings       int64              `json:"total_bookings"`
	AverageBookingValue float64            `json:"average_booking_value"`
}

type CustomerResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	TotalBookings int64   `json:"total_bookings"`
	TotalSpent    float64 `json:"total_spent"`
	CreatedAt     string  `json:"created_at"`
}

// Helper converters
func DailyStatsToResponse(stats []entity.DailyBookingStat) []DailyBookingStat {
	out := make([]DailyBookingStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, DailyBookingStat{
			Date:    s.Date.Format(utils.DateLayout),
			Count:   s.Count,
			Revenue: s.Revenue,
		})
	}
	return out
}

func MethodRevenueToResponse(list []entity.MethodRevenue) []MethodRevenue {
	out := make([]MethodRevenue, 0, len(list))
	for _, m := range list {
		out = append(out, MethodRevenue{PaymentMethod: m.Method, Count: m.Count, Total: m.Total})
	}
	return out
}

func RoomTypeStatsToResponse(list []entity.RoomTypeStat) []RoomTypeStat {
	out := make([]RoomTypeStat, 0, len(list))
	for _, s := range list {
		out = append(out, RoomTypeStat{RoomType: s.RoomType, Count: s.Count})
	}
	return out
}

func CustomersToResponse(list []*entity.CustomerStats) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CustomerResponse{
			ID:            c.ID.String(),
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			TotalBookings: c.TotalBookings,
			TotalSpent:    c.TotalSpent,
			CreatedAt:     c.CreatedAt.Format(utils.DateLayout),
		})
	}
	return out
}
