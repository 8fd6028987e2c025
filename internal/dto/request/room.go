package request

type CheckAvailabilityRequest struct {
	RoomID   string `json:"room_id" validate:"required,uuid"`
	CheckIn  string `json:"check_in" validate:"required,flexdate"`
	CheckOut string `json:"check_out" validate:"required,flexdate"`
}

type CreateRoomRequest struct {
	RoomTitle       string   `json:"room_title" validate:"required,max=255"`
	RoomType        string   `json:"room_type" validate:"required,max=100"`
	Description     string   `json:"description" validate:"required"`
	Price           *float64 `json:"price" validate:"required,gte=0"`
	Capacity        int      `json:"capacity" validate:"required,min=1"`
	Wifi            bool     `json:"wifi"`
	AirConditioning bool     `json:"air_conditioning"`
	TV              bool     `json:"tv"`
	BathroomType    string   `json:"bathroom_type" validate:"omitempty,max=50"`
	Amenities       []string `json:"amenities"`
}

// UpdateRoomRequest is a partial update; nil fields are left unchanged.
type UpdateRoomRequest struct {
	RoomTitle       *string   `json:"room_title,omitempty" validate:"omitempty,max=255"`
	RoomType        *string   `json:"room_type,omitempty" validate:"omitempty,max=100"`
	Description     *string   `json:"description,omitempty"`
	Price           *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Capacity        *int      `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Wifi            *bool     `json:"wifi,omitempty"`
	AirConditioning *bool     `json:"air_conditioning,omitempty"`
	TV              *bool     `json:"tv,omitempty"`
	BathroomType    *string   `json:"bathroom_type,omitempty" validate:"omitempty,max=50"`
	Amenities       *[]string `json:"amenities,omitempty"`
	Status          *string   `json:"status,omitempty" validate:"omitempty,oneof=available unavailable maintenance"`
}

type PriceUpdate struct {
	RoomID string   `json:"room_id" validate:"required,uuid"`
	Price  *float64 `json:"price" validate:"required,gte=0"`
}

type BulkPriceUpdateRequest struct {
	Updates []PriceUpdate `json:"updates" validate:"required,min=1,dive"`
}

// RoomListQuery is parsed from the query string of GET /api/rooms.
type RoomListQuery struct {
	RoomType  string
	MinPrice  *float64
	MaxPrice  *float64
	Capacity  int
	Amenities []string
	Page      int
	PerPage   int
}
