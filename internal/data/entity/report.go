package entity

import "time"

type DailyBookingStat struct {
	Date    time.Time
	Count   int64
	Revenue float64
}

type MethodRevenue struct {
	Method string
	Count  int64
	Total  float64
}

type RoomTypeStat struct {
	RoomType string
	Count    int64
}

type CustomerStats struct {
	User
	TotalBookings int64
	TotalSpent    float64
}
