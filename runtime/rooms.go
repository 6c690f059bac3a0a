package runtime

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-core/domain"
)

// RoomRegistry maps room ids to their single Room record. It is seeded
// with the default room at construction; rooms are never deleted.
type RoomRegistry struct {
	mu    sync.RWMutex
	log   *slog.Logger
	rooms map[string]*domain.Room
}

func NewRoomRegistry(log *slog.Logger) *RoomRegistry {
	registry := &RoomRegistry{
		log:   log,
		rooms: make(map[string]*domain.Room),
	}
	registry.rooms[domain.DefaultRoomID] = domain.NewRoom(domain.DefaultRoomID, "General")
	return registry
}

// Create adds a room under a freshly generated id. Never fails.
func (r *RoomRegistry) Create(name string) *domain.Room {
	room := domain.NewRoom(uuid.NewString(), name)

	r.mu.Lock()
	r.rooms[room.ID] = room
	r.mu.Unlock()

	r.log.Debug("Room created", "id", room.ID, "name", name)
	return room
}

func (r *RoomRegistry) Get(roomID string) (*domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	return room, ok
}

// List snapshots all rooms, sorted by id.
func (r *RoomRegistry) List() []domain.RoomInfo {
	r.mu.RLock()
	rooms := lo.Values(r.rooms)
	r.mu.RUnlock()

	infos := lo.Map(rooms, func(room *domain.Room, _ int) domain.RoomInfo {
		return room.Snapshot()
	})
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
