package domain

import (
	"sort"
	"sync"
)

// DefaultRoomID is the well-known id of the room every registration
// auto-joins. All other room ids are generated.
const DefaultRoomID = "general"

// Room is a named group channel. Membership is a set of usernames and
// says nothing about who is currently online. Rooms are never deleted.
// History is kept by the history repository, keyed by room id.
type Room struct {
	ID   string
	Name string

	mu      sync.RWMutex
	members map[string]struct{}
}

func NewRoom(id, name string) *Room {
	return &Room{
		ID:      id,
		Name:    name,
		members: make(map[string]struct{}),
	}
}

func (r *Room) AddMember(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[username] = struct{}{}
}

func (r *Room) RemoveMember(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, username)
}

func (r *Room) HasMember(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[username]
	return ok
}

// Members returns a sorted copy of the membership set.
func (r *Room) Members() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]string, 0, len(r.members))
	for username := range r.members {
		members = append(members, username)
	}
	sort.Strings(members)
	return members
}

func (r *Room) Snapshot() RoomInfo {
	return RoomInfo{
		ID:      r.ID,
		Name:    r.Name,
		Members: r.Members(),
	}
}
