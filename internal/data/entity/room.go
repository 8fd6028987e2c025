package entity

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusUnavailable RoomStatus = "unavailable"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

type Room struct {
	BaseNoDelete
	Title           string     `db:"room_title"`
	RoomType        string     `db:"room_type"`
	Description     string     `db:"description"`
	Price           float64    `db:"price"`
	Capacity        int        `db:"capacity"`
	Image           *string    `db:"image"`
	Wifi            bool       `db:"wifi"`
	AirConditioning bool       `db:"air_conditioning"`
	TV              bool       `db:"tv"`
	BathroomType    string     `db:"bathroom_type"`
	Amenities       []string   `db:"amenities"`
	Status          RoomStatus `db:"status"`
}

// RoomSummary is a room with its review aggregate and, for admin listings,
// how many bookings reference it.
type RoomSummary struct {
	Room
	AverageRating float64
	ReviewCount   int64
	BookingsCount int64
}

type RoomFilter struct {
	RoomType    string
	MinPrice    *float64
	MaxPrice    *float64
	MinCapacity int
	Amenities   []string
	// Status defaults to available in the public listing.
	Status RoomStatus
}
