package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertyhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomType labels what a chat room is about.
type RoomType string

const (
	RoomMaintenance RoomType = "MAINTENANCE"
	RoomGeneral     RoomType = "GENERAL"
)

// Room is a two-party conversation. Participants are stored canonically with
// the smaller UUID first so the same pair always maps to the same row.
type Room struct {
	ID            uuid.UUID  `db:"id"`
	UserA         uuid.UUID  `db:"user_a"`
	UserB         uuid.UUID  `db:"user_b"`
	Type          RoomType   `db:"chat_type"`
	MaintenanceID *uuid.UUID `db:"maintenance_id"`
	CreatedAt     time.Time  `db:"created_at"`
}

// Message is one chat message inside a room.
type Message struct {
	ID        uuid.UUID `db:"id"`
	RoomID    uuid.UUID `db:"room_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

// Repository provides database operations for chat rooms and messages.
type Repository struct {
	pool *pgxpool.Pool
}

const roomColumns = `id, user_a, user_b, chat_type, maintenance_id, created_at`

// New creates a new chat repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CanonicalPair orders two user IDs so the same pair always stores the same way.
func CanonicalPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if y.String() < x.String() {
		return y, x
	}
	return x, y
}

// GetOrCreate returns the room for a user pair and type, creating it if
// missing. For maintenance rooms the pair is further scoped by maintenance ID
// so each job gets its own thread.
func (r *Repository) GetOrCreate(ctx context.Context, x, y uuid.UUID, roomType RoomType, maintenanceID *uuid.UUID) (*Room, error) {
	a, b := CanonicalPair(x, y)

	find := `SELECT ` + roomColumns + ` FROM chat_rooms
		WHERE user_a = $1 AND user_b = $2 AND chat_type = $3
		  AND maintenance_id IS NOT DISTINCT FROM $4
		LIMIT 1`

	var room Room
	err := r.pool.QueryRow(ctx, find, a, b, roomType, maintenanceID).
		Scan(&room.ID, &room.UserA, &room.UserB, &room.Type, &room.MaintenanceID, &room.CreatedAt)
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to find chat room: %w", err)
	}

	room = Room{
		ID:            uuid.New(),
		UserA:         a,
		UserB:         b,
		Type:          roomType,
		MaintenanceID: maintenanceID,
		CreatedAt:     time.Now(),
	}

	insert := `INSERT INTO chat_rooms (id, user_a, user_b, chat_type, maintenance_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.pool.Exec(ctx, insert, room.ID, room.UserA, room.UserB, room.Type, room.MaintenanceID, room.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create chat room: %w", err)
	}

	return &room, nil
}

// GetByID retrieves a room.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM chat_rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.UserA, &room.UserB, &room.Type, &room.MaintenanceID, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("chat room not found")
		}
		return nil, fmt.Errorf("failed to get chat room: %w", err)
	}
	return &room, nil
}

// ListByUser returns every room the user participates in, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Room, error) {
	query := `SELECT ` + roomColumns + ` FROM chat_rooms
		WHERE user_a = $1 OR user_b = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat rooms: %w", err)
	}
	defer rows.Close()

	var result []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.UserA, &room.UserB, &room.Type, &room.MaintenanceID, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat room: %w", err)
		}
		result = append(result, room)
	}

	return result, rows.Err()
}

// CreateMessage appends a message to a room.
func (r *Repository) CreateMessage(ctx context.Context, m *Message) error {
	query := `INSERT INTO messages (id, room_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, query, m.ID, m.RoomID, m.SenderID, m.Body, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListMessages returns a room's messages in chronological order.
func (r *Repository) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	query := `SELECT id, room_id, sender_id, body, created_at FROM messages
		WHERE room_id = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var result []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		result = append(result, m)
	}

	return result, rows.Err()
}
