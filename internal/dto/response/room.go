package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type RoomResponse struct {
	ID              string            `json:"id"`
	RoomTitle       string            `json:"room_title"`
	RoomType        string            `json:"room_type"`
	Description     string            `json:"description"`
	Price           float64           `json:"price"`
	Capacity        int               `json:"capacity"`
	Image           *string           `json:"image"`
	Wifi            bool              `json:"wifi"`
	AirConditioning bool              `json:"air_conditioning"`
	TV              bool              `json:"tv"`
	BathroomType    string            `json:"bathroom_type"`
	Amenities       []string          `json:"amenities"`
	Status          entity.RoomStatus `json:"status"`
	Rating          float64           `json:"rating"`
	ReviewCount     int64             `json:"review_count"`
	CreatedAt       time.Time         `json:"created_at"`
}

type RoomDetailResponse struct {
	RoomResponse
	Reviews []ReviewResponse `json:"reviews"`
}

type AdminRoomResponse struct {
	RoomResponse
	BookingsCount int64 `json:"bookings_count"`
}

type AvailabilityResponse struct {
	Available bool    `json:"available"`
	RoomID    string  `json:"room_id"`
	RoomTitle string  `json:"room_title"`
	Price     float64 `json:"price"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out"`
}

type CalendarResponse struct {
	RoomID      string   `json:"room_id"`
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	BookedDates []string `json:"booked_dates"`
}

func imageURL(room *entity.Room, resolve URLResolver) *string {
	if room.Image == nil || resolve == nil {
		return room.Image
	}
	u := resolve(*room.Image)
	return &u
}

// Helper converters
func RoomToResponse(room *entity.Room, resolve URLResolver) RoomResponse {
	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return RoomResponse{
		ID:              room.ID.String(),
		RoomTitle:       room.Title,
		RoomType:        room.RoomType,
		Description:     room.Description,
		Price:           room.Price,
		Capacity:        room.Capacity,
		Image:           imageURL(room, resolve),
		Wifi:            room.Wifi,
		AirConditioning: room.AirConditioning,
		TV:              room.TV,
		BathroomType:    room.BathroomType,
		Amenities:       amenities,
		Status:          room.Status,
		CreatedAt:       room.CreatedAt,
	}
}

func RoomSummaryToResponse(s *entity.RoomSummary, resolve URLResolver) RoomResponse {
	resp := RoomToResponse(&s.Room, resolve)
	resp.Rating = utils.RoundTo(s.AverageRating, 1)
	resp.ReviewCount = s.ReviewCount
	return resp
}

func RoomSummariesToResponse(rooms []*entity.RoomSummary, resolve URLResolver) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomSummaryToResponse(r, resolve))
	}
	return out
}

func RoomSummariesToAdmin(rooms []*entity.RoomSummary, resolve URLResolver) []AdminRoomResponse {
	out := make([]AdminRoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, AdminRoomResponse{
			RoomResponse:  RoomSummaryToResponse(r, resolve),
			BookingsCount: r.BookingsCount,
		})
	}
	return out
}
