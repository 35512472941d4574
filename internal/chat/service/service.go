// Package service implements chat rooms and messaging, including the
// per-maintenance thread opened when a vendor takes a job.
package service

import (
	"context"
	"time"

	"propertyhub_backend/internal/chat/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"
	"propertyhub_backend/platform/sanitize"

	"github.com/google/uuid"
)

// RoomStore is the persistence interface the service depends on.
type RoomStore interface {
	GetOrCreate(ctx context.Context, x, y uuid.UUID, roomType repository.RoomType, maintenanceID *uuid.UUID) (*repository.Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Room, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.Room, error)
	CreateMessage(ctx context.Context, m *repository.Message) error
	ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]repository.Message, error)
}

// Service provides business logic for chat.
type Service struct {
	store RoomStore
	log   *logger.Logger
}

// New creates a new chat service.
func New(store RoomStore, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// OpenMaintenanceRoom opens (or returns) the thread between the two parties
// of a maintenance job. Called by the lifecycle engine on vendor assignment.
func (s *Service) OpenMaintenanceRoom(ctx context.Context, maintenanceID, userA, userB uuid.UUID) (uuid.UUID, error) {
	room, err := s.store.GetOrCreate(ctx, userA, userB, repository.RoomMaintenance, &maintenanceID)
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("maintenance chat room opened",
		"room_id", room.ID,
		"maintenance_id", maintenanceID)

	return room.ID, nil
}

// ListRooms returns the caller's rooms.
func (s *Service) ListRooms(ctx context.Context, userID uuid.UUID) ([]repository.Room, error) {
	return s.store.ListByUser(ctx, userID)
}

// SendMessage appends a message after checking the sender belongs to the room.
func (s *Service) SendMessage(ctx context.Context, roomID, senderID uuid.UUID, body string) (*repository.Message, error) {
	body = sanitize.Text(body)
	if body == "" {
		return nil, apperr.Validation("message body is required")
	}

	room, err := s.store.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.UserA != senderID && room.UserB != senderID {
		return nil, apperr.Forbidden("not a participant of this chat room")
	}

	msg := &repository.Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// ListMessages returns a room's history after checking membership.
func (s *Service) ListMessages(ctx context.Context, roomID, userID uuid.UUID, limit int) ([]repository.Message, error) {
	room, err := s.store.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.UserA != userID && room.UserB != userID {
		return nil, apperr.Forbidden("not a participant of this chat room")
	}

	return s.store.ListMessages(ctx, roomID, limit)
}
