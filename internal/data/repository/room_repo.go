package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindSummary(ctx context.Context, id uuid.UUID) (*entity.RoomSummary, error)
	Search(ctx context.Context, filter entity.RoomFilter, limit, offset int) ([]*entity.RoomSummary, error)
	Count(ctx context.Context, filter entity.RoomFilter) (int64, error)
	ListWithBookingCounts(ctx context.Context) ([]*entity.RoomSummary, error)
	Update(ctx context.Context, room *entity.Room) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price float64) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `r.id, r.room_title, r.room_type, r.description, r.price, r.capacity, r.image,
		       r.wifi, r.air_conditioning, r.tv, r.bathroom_type, r.amenities, r.status,
		       r.created_at, r.updated_at`

// ratingJoin attaches avg_rating and review_count per room.
const ratingJoin = `
		LEFT JOIN (
			SELECT room_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			GROUP BY room_id
		) rv ON rv.room_id = r.id`

func roomDest(room *entity.Room) []any {
	return []any{
		&room.ID,
		&room.Title,
		&room.RoomType,
		&room.Description,
		&room.Price,
		&room.Capacity,
		&room.Image,
		&room.Wifi,
		&room.AirConditioning,
		&room.TV,
		&room.BathroomType,
		&room.Amenities,
		&room.Status,
		&room.CreatedAt,
		&room.UpdatedAt,
	}
}

func scanRoom(row rowScanner) (*entity.Room, error) {
	var room entity.Room
	if err := row.Scan(roomDest(&room)...); err != nil {
		return nil, err
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	return &room, nil
}

func scanRoomSummary(row rowScanner) (*entity.RoomSummary, error) {
	var s entity.RoomSummary
	dest := append(roomDest(&s.Room), &s.AverageRating, &s.ReviewCount, &s.BookingsCount)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if s.Amenities == nil {
		s.Amenities = []string{}
	}
	return &s, nil
}

func amenitiesJSON(amenities []string) (string, error) {
	if amenities == nil {
		amenities = []string{}
	}
	b, err := json.Marshal(amenities)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	amenities, err := amenitiesJSON(room.Amenities)
	if err != nil {
		return fmt.Errorf("encode amenities: %w", err)
	}

	query := `
		INSERT INTO rooms (id, room_title, room_type, description, price, capacity, image,
		                   wifi, air_conditioning, tv, bathroom_type, amenities, status,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14, $15)
	`

	_, err = r.db.Exec(ctx, query,
		room.ID,
		room.Title,
		room.RoomType,
		room.Description,
		room.Price,
		room.Capacity,
		room.Image,
		room.Wifi,
		room.AirConditioning,
		room.TV,
		room.BathroomType,
		amenities,
		room.Status,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("room_title", room.Title),
		)
		return fmt.Errorf("create room %s: %w", room.Title, err)
	}

	return nil
}

func (r *roomRepository) findOne(ctx context.Context, id uuid.UUID, suffix string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms r WHERE r.id = $1` + suffix

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}
	return room, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx, id, "")
}

func (r *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx, id, " FOR UPDATE")
}

func (r *roomRepository) FindSummary(ctx context.Context, id uuid.UUID) (*entity.RoomSummary, error) {
	query := `
		SELECT ` + roomColumns + `,
		       COALESCE(rv.avg_rating, 0), COALESCE(rv.review_count, 0), 0
		FROM rooms r` + ratingJoin + `
		WHERE r.id = $1
	`

	summary, err := scanRoomSummary(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room summary",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room summary %s: %w", id.String(), err)
	}
	return summary, nil
}

// buildRoomFilter returns the WHERE clause for filter and its arguments.
func buildRoomFilter(filter entity.RoomFilter) (string, []any, error) {
	var where strings.Builder
	args := []any{}
	argCount := 1

	status := filter.Status
	if status == "" {
		status = entity.RoomStatusAvailable
	}
	where.WriteString(fmt.Sprintf(" WHERE r.status = $%d", argCount))
	args = append(args, status)
	argCount++

	if filter.RoomType != "" {
		where.WriteString(fmt.Sprintf(" AND r.room_type = $%d", argCount))
		args = append(args, filter.RoomType)
		argCount++
	}

	// Price range only applies when both bounds are given.
	if filter.MinPrice != nil && filter.MaxPrice != nil {
		where.WriteString(fmt.Sprintf(" AND r.price BETWEEN $%d AND $%d", argCount, argCount+1))
		args = append(args, *filter.MinPrice, *filter.MaxPrice)
		argCount += 2
	}

	if filter.MinCapacity > 0 {
		where.WriteString(fmt.Sprintf(" AND r.capacity >= $%d", argCount))
		args = append(args, filter.MinCapacity)
		argCount++
	}

	if len(filter.Amenities) > 0 {
		amenities, err := amenitiesJSON(filter.Amenities)
		if err != nil {
			return "", nil, err
		}
		where.WriteString(fmt.Sprintf(" AND r.amenities @> $%d::jsonb", argCount))
		args = append(args, amenities)
	}

	return where.String(), args, nil
}

func (r *roomRepository) Search(ctx context.Context, filter entity.RoomFilter, limit, offset int) ([]*entity.RoomSummary, error) {
	where, args, err := buildRoomFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("build room filter: %w", err)
	}

	argCount := len(args) + 1
	query := `
		SELECT ` + roomColumns + `,
		       COALESCE(rv.avg_rating, 0), COALESCE(rv.review_count, 0), 0
		FROM rooms r` + ratingJoin + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search rooms",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.RoomSummary
	for rows.Next() {
		room, err := scanRoomSummary(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) Count(ctx context.Context, filter entity.RoomFilter) (int64, error) {
	where, args, err := buildRoomFilter(filter)
	if err != nil {
		return 0, fmt.Errorf("build room filter: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms r`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count rooms: %w", err)
	}

	return total, nil
}

func (r *roomRepository) ListWithBookingCounts(ctx context.Context) ([]*entity.RoomSummary, error) {
	query := `
		SELECT ` + roomColumns + `,
		       COALESCE(rv.avg_rating, 0), COALESCE(rv.review_count, 0),
		       (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)
		FROM rooms r` + ratingJoin + `
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.RoomSummary
	for rows.Next() {
		room, err := scanRoomSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	amenities, err := amenitiesJSON(room.Amenities)
	if err != nil {
		return fmt.Errorf("encode amenities: %w", err)
	}

	query := `
		UPDATE rooms
		SET room_title = $2, room_type = $3, description = $4, price = $5, capacity = $6,
		    image = $7, wifi = $8, air_conditioning = $9, tv = $10, bathroom_type = $11,
		    amenities = $12::jsonb, status = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.Title,
		room.RoomType,
		room.Description,
		room.Price,
		room.Capacity,
		room.Image,
		room.Wifi,
		room.AirConditioning,
		room.TV,
		room.BathroomType,
		amenities,
		room.Status,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update room %s: %w", room.ID.String(), ErrNoRowsAffected)
	}

	return nil
}

func (r *roomRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price float64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE rooms SET price = $2, updated_at = NOW() WHERE id = $1`, id, price)
	if err != nil {
		r.log.Error("Failed to update room price",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return fmt.Errorf("update price of room %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update price of room %s: %w", id.String(), ErrNoRowsAffected)
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return fmt.Errorf("delete room %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete room %s: %w", id.String(), ErrNoRowsAffected)
	}

	r.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

func (r *roomRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count all rooms: %w", err)
	}
	return count, nil
}
