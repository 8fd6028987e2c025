package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/storage"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultRoomsPerPage = 12
	roomDetailReviews   = 10
	roomImageFolder     = "rooms"
	minCalendarYear     = 2024
)

type RoomService interface {
	// Public endpoints
	ListRooms(ctx context.Context, q request.RoomListQuery) (*response.Page[response.RoomResponse], error)
	GetRoom(ctx context.Context, id uuid.UUID) (*response.RoomDetailResponse, error)
	CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error)
	// GetCalendar defaults a zero month or year to the current one.
	GetCalendar(ctx context.Context, id uuid.UUID, month, year int) (*response.CalendarResponse, error)

	// Admin endpoints
	ListAdminRooms(ctx context.Context) ([]response.AdminRoomResponse, error)
	CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req *request.UpdateRoomRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*response.RoomResponse, error)
	BulkUpdatePrices(ctx context.Context, req *request.BulkPriceUpdateRequest) (int, error)
}

type roomService struct {
	repo  *repository.Repository
	store storage.FileStore
	log   *zap.Logger
	now   func() time.Time
}

func NewRoomService(repo *repository.Repository, store storage.FileStore, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		store: store,
		log:   log.With(zap.String("service", "room")),
		now:   time.Now,
	}
}

func (s *roomService) ListRooms(ctx context.Context, q request.RoomListQuery) (*response.Page[response.RoomResponse], error) {
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultRoomsPerPage
	}
	page := request.NewPaginatedRequest(q.Page, perPage)

	filter := entity.RoomFilter{
		RoomType:    strings.TrimSpace(q.RoomType),
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		MinCapacity: q.Capacity,
		Amenities:   q.Amenities,
		Status:      entity.RoomStatusAvailable,
	}

	rooms, err := s.repo.Room.Search(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to search rooms", zap.Error(err))
		return nil, fmt.Errorf("search rooms: %w", err)
	}

	total, err := s.repo.Room.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count rooms", zap.Error(err))
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	return response.NewPage(response.RoomSummariesToResponse(rooms, s.store.URL), q.Page, page.Limit(), total), nil
}

func (s *roomService) GetRoom(ctx context.Context, id uuid.UUID) (*response.RoomDetailResponse, error) {
	room, err := s.repo.Room.FindSummary(ctx, id)
	if err != nil {
		s.log.Error("Failed to find room", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, newError(ErrNotFound, "Room not found")
	}

	reviews, err := s.repo.Review.FindByRoomID(ctx, id, roomDetailReviews, 0)
	if err != nil {
		s.log.Error("Failed to load room reviews", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("load room reviews: %w", err)
	}

	return &response.RoomDetailResponse{
		RoomResponse: response.RoomSummaryToResponse(room, s.store.URL),
		Reviews:      response.ReviewsToResponse(reviews),
	}, nil
}

func (s *roomService) CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}

	checkIn, _ := utils.ParseDate(req.CheckIn)
	checkOut, _ := utils.ParseDate(req.CheckOut)
	if checkIn.Before(utils.StartOfDay(s.now())) {
		return nil, fieldError("check_in", "Check-in must be today or later")
	}
	if !checkOut.After(checkIn) {
		return nil, fieldError("check_out", "Check-out must be after check-in")
	}

	// 2. Room must exist
	roomID := uuid.MustParse(req.RoomID)
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, newError(ErrNotFound, "Room not found")
	}

	// 3. Look for paid overlapping stays
	conflicts, err := s.repo.Booking.CountOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		s.log.Error("Failed to check availability", zap.Error(err), zap.String("room_id", req.RoomID))
		return nil, fmt.Errorf("check availability: %w", err)
	}

	return &response.AvailabilityResponse{
		Available: conflicts == 0,
		RoomID:    room.ID.String(),
		RoomTitle: room.Title,
		Price:     room.Price,
		CheckIn:   checkIn.Format(utils.DateLayout),
		CheckOut:  checkOut.Format(utils.DateLayout),
	}, nil
}

func (s *roomService) GetCalendar(ctx context.Context, id uuid.UUID, month, year int) (*response.CalendarResponse, error) {
	now := s.now().UTC()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, fieldError("month", "Must be between 1 and 12")
	}
	if year < minCalendarYear {
		return nil, fieldError("year", fmt.Sprintf("Must be at least %d", minCalendarYear))
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, newError(ErrNotFound, "Room not found")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	bookings, err := s.repo.Booking.FindBookedInRange(ctx, id, from, to)
	if err != nil {
		s.log.Error("Failed to load booked dates", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("load booked dates: %w", err)
	}

	return &response.CalendarResponse{
		RoomID:      id.String(),
		Month:       month,
		Year:        year,
		BookedDates: bookedNights(bookings, from, to),
	}, nil
}

// bookedNights lists each night in [from, to) covered by a booking. The
// check-out day itself is free.
func bookedNights(bookings []*entity.Booking, from, to time.Time) []string {
	seen := make(map[string]struct{})
	for _, b := range bookings {
		start := utils.StartOfDay(b.CheckIn)
		if start.Before(from) {
			start = from
		}
		end := utils.StartOfDay(b.CheckOut)
		if end.After(to) {
			end = to
		}
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			seen[d.Format(utils.DateLayout)] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// ==================== ADMIN ====================

func (s *roomService) ListAdminRooms(ctx context.Context) ([]response.AdminRoomResponse, error) {
	rooms, err := s.repo.Room.ListWithBookingCounts(ctx)
	if err != nil {
		s.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return response.RoomSummariesToAdmin(rooms, s.store.URL), nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	bathroom := req.BathroomType
	if bathroom == "" {
		bathroom = "private"
	}

	room := &entity.Room{
		BaseNoDelete:    entity.NewBaseNoDelete(s.now()),
		Title:           req.RoomTitle,
		RoomType:        req.RoomType,
		Description:     req.Description,
		Price:           *req.Price,
		Capacity:        req.Capacity,
		Wifi:            req.Wifi,
		AirConditioning: req.AirConditioning,
		TV:              req.TV,
		BathroomType:    bathroom,
		Amenities:       req.Amenities,
		Status:          entity.RoomStatusAvailable,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.log.Error("Failed to create room", zap.Error(err))
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created", zap.String("room_id", room.ID.String()), zap.String("room_type", room.RoomType))

	resp := response.RoomToResponse(room, s.store.URL)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id uuid.UUID, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	applyRoomUpdate(room, req)
	room.UpdatedAt = s.now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.log.Error("Failed to update room", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("update room: %w", err)
	}

	resp := response.RoomToResponse(room, s.store.URL)
	return &resp, nil
}

func applyRoomUpdate(room *entity.Room, req *request.UpdateRoomRequest) {
	if req.RoomTitle != nil {
		room.Title = *req.RoomTitle
	}
	if req.RoomType != nil {
		room.RoomType = *req.RoomType
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Wifi != nil {
		room.Wifi = *req.Wifi
	}
	if req.AirConditioning != nil {
		room.AirConditioning = *req.AirConditioning
	}
	if req.TV != nil {
		room.TV = *req.TV
	}
	if req.BathroomType != nil {
		room.BathroomType = *req.BathroomType
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	if req.Status != nil {
		room.Status = entity.RoomStatus(*req.Status)
	}
}

func (s *roomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	room, err := s.findRoom(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Room.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete room", zap.Error(err), zap.String("room_id", id.String()))
		return fmt.Errorf("delete room: %w", err)
	}

	if room.Image != nil {
		if err := s.store.Delete(ctx, *room.Image); err != nil {
			s.log.Warn("Failed to delete room image", zap.Error(err), zap.String("key", *room.Image))
		}
	}

	s.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

func (s *roomService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := storage.DetectImage(data)
	if err != nil {
		return nil, fieldError("image", err.Error())
	}

	file, err := s.store.Save(ctx, roomImageFolder, ext, data)
	if err != nil {
		s.log.Error("Failed to store room image", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("store room image: %w", err)
	}

	previous := room.Image
	room.Image = &file.Key
	room.UpdatedAt = s.now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.log.Error("Failed to save room image", zap.Error(err), zap.String("room_id", id.String()))
		if delErr := s.store.Delete(ctx, file.Key); delErr != nil {
			s.log.Warn("Failed to remove orphaned image", zap.Error(delErr))
		}
		return nil, fmt.Errorf("save room image: %w", err)
	}

	if previous != nil {
		if err := s.store.Delete(ctx, *previous); err != nil {
			s.log.Warn("Failed to delete previous room image", zap.Error(err), zap.String("key", *previous))
		}
	}

	resp := response.RoomToResponse(room, s.store.URL)
	return &resp, nil
}

// BulkUpdatePrices applies every update or none of them.
func (s *roomService) BulkUpdatePrices(ctx context.Context, req *request.BulkPriceUpdateRequest) (int, error) {
	if err := validate(req); err != nil {
		return 0, err
	}

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		for _, u := range req.Updates {
			if err := tx.Room.UpdatePrice(ctx, uuid.MustParse(u.RoomID), *u.Price); err != nil {
				if errors.Is(err, repository.ErrNoRowsAffected) {
					return newError(ErrNotFound, fmt.Sprintf("Room %s not found", u.RoomID))
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isClientError(err) {
			return 0, err
		}
		s.log.Error("Failed to update prices", zap.Error(err))
		return 0, fmt.Errorf("update prices: %w", err)
	}

	s.log.Info("Room prices updated", zap.Int("count", len(req.Updates)))
	return len(req.Updates), nil
}

func (s *roomService) findRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find room", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, newError(ErrNotFound, "Room not found")
	}
	return room, nil
}
