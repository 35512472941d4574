package service

import (
	"context"
	"testing"
	"time"

	"propertyhub_backend/internal/chat/repository"
	"propertyhub_backend/platform/apperr"
	"propertyhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRoomStore struct {
	rooms    map[uuid.UUID]*repository.Room
	messages map[uuid.UUID][]repository.Message
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{
		rooms:    make(map[uuid.UUID]*repository.Room),
		messages: make(map[uuid.UUID][]repository.Message),
	}
}

func (f *fakeRoomStore) GetOrCreate(_ context.Context, x, y uuid.UUID, roomType repository.RoomType, maintenanceID *uuid.UUID) (*repository.Room, error) {
	a, b := repository.CanonicalPair(x, y)
	for _, room := range f.rooms {
		if room.UserA != a || room.UserB != b || room.Type != roomType {
			continue
		}
		if (room.MaintenanceID == nil) != (maintenanceID == nil) {
			continue
		}
		if maintenanceID != nil && *room.MaintenanceID != *maintenanceID {
			continue
		}
		return room, nil
	}
	room := &repository.Room{
		ID:            uuid.New(),
		UserA:         a,
		UserB:         b,
		Type:          roomType,
		MaintenanceID: maintenanceID,
		CreatedAt:     time.Now(),
	}
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeRoomStore) GetByID(_ context.Context, id uuid.UUID) (*repository.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperr.NotFound("chat room not found")
	}
	return room, nil
}

func (f *fakeRoomStore) ListByUser(_ context.Context, userID uuid.UUID) ([]repository.Room, error) {
	var result []repository.Room
	for _, room := range f.rooms {
		if room.UserA == userID || room.UserB == userID {
			result = append(result, *room)
		}
	}
	return result, nil
}

func (f *fakeRoomStore) CreateMessage(_ context.Context, m *repository.Message) error {
	f.messages[m.RoomID] = append(f.messages[m.RoomID], *m)
	return nil
}

func (f *fakeRoomStore) ListMessages(_ context.Context, roomID uuid.UUID, _ int) ([]repository.Message, error) {
	return f.messages[roomID], nil
}

func TestCanonicalPair_OrderIndependent(t *testing.T) {
	x := uuid.New()
	y := uuid.New()

	a1, b1 := repository.CanonicalPair(x, y)
	a2, b2 := repository.CanonicalPair(y, x)
	if a1 != a2 || b1 != b2 {
		t.Fatal("expected the same canonical pair regardless of argument order")
	}
	if a1.String() > b1.String() {
		t.Fatal("expected the smaller UUID first")
	}
}

func TestOpenMaintenanceRoom_ReusedForSameJob(t *testing.T) {
	store := newFakeRoomStore()
	svc := New(store, logger.New("development"))
	maintenanceID := uuid.New()
	vendorID := uuid.New()
	tenantID := uuid.New()

	first, err := svc.OpenMaintenanceRoom(context.Background(), maintenanceID, vendorID, tenantID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}
	second, err := svc.OpenMaintenanceRoom(context.Background(), maintenanceID, tenantID, vendorID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}
	if first != second {
		t.Fatal("expected the same room for the same job and pair")
	}
}

func TestOpenMaintenanceRoom_SeparateRoomsPerJob(t *testing.T) {
	store := newFakeRoomStore()
	svc := New(store, logger.New("development"))
	vendorID := uuid.New()
	tenantID := uuid.New()

	first, err := svc.OpenMaintenanceRoom(context.Background(), uuid.New(), vendorID, tenantID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}
	second, err := svc.OpenMaintenanceRoom(context.Background(), uuid.New(), vendorID, tenantID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected a separate room per maintenance job")
	}
}

func TestSendMessage_RequiresMembership(t *testing.T) {
	store := newFakeRoomStore()
	svc := New(store, logger.New("development"))
	vendorID := uuid.New()
	tenantID := uuid.New()

	roomID, err := svc.OpenMaintenanceRoom(context.Background(), uuid.New(), vendorID, tenantID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}

	if _, err := svc.SendMessage(context.Background(), roomID, tenantID, "When can you come by?"); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	_, err = svc.SendMessage(context.Background(), roomID, uuid.New(), "Let me in")
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for a non-participant, got %v", err)
	}
}

func TestSendMessage_RejectsEmptyBody(t *testing.T) {
	store := newFakeRoomStore()
	svc := New(store, logger.New("development"))
	tenantID := uuid.New()

	roomID, err := svc.OpenMaintenanceRoom(context.Background(), uuid.New(), uuid.New(), tenantID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}

	_, err = svc.SendMessage(context.Background(), roomID, tenantID, "   ")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for blank body, got %v", err)
	}
}

func TestListMessages_RequiresMembership(t *testing.T) {
	store := newFakeRoomStore()
	svc := New(store, logger.New("development"))
	vendorID := uuid.New()
	tenantID := uuid.New()

	roomID, err := svc.OpenMaintenanceRoom(context.Background(), uuid.New(), vendorID, tenantID)
	if err != nil {
		t.Fatalf("OpenMaintenanceRoom returned error: %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), roomID, vendorID, "On my way."); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}

	msgs, err := svc.ListMessages(context.Background(), roomID, tenantID, 50)
	if err != nil {
		t.Fatalf("ListMessages returned error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	_, err = svc.ListMessages(context.Background(), roomID, uuid.New(), 50)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for a non-participant, got %v", err)
	}
}
