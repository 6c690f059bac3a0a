package domain

import (
	"sort"
	"sync"
)

// User is a participant identity. A user is created on first
// registration and never deleted; re-registration rebinds the session.
// Membership tracked here is independent of the online flag and of the
// room-side member sets, which are updated separately.
type User struct {
	Username string

	mu        sync.RWMutex
	sessionID string
	online    bool
	rooms     map[string]struct{}
}

func NewUser(username string) *User {
	return &User{
		Username: username,
		online:   true,
		rooms:    make(map[string]struct{}),
	}
}

// Bind attaches the last transport session and flips the user online.
func (u *User) Bind(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sessionID = sessionID
	u.online = true
}

// SetOffline marks presence down without touching room membership.
func (u *User) SetOffline() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.online = false
}

func (u *User) Online() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.online
}

func (u *User) SessionID() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.sessionID
}

func (u *User) JoinRoom(roomID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rooms[roomID] = struct{}{}
}

func (u *User) LeaveRoom(roomID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.rooms, roomID)
}

func (u *User) InRoom(roomID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.rooms[roomID]
	return ok
}

// Rooms returns a sorted copy of the membership set.
func (u *User) Rooms() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	rooms := make([]string, 0, len(u.rooms))
	for roomID := range u.rooms {
		rooms = append(rooms, roomID)
	}
	sort.Strings(rooms)
	return rooms
}

// Snapshot copies the current state into a plain value for queries.
func (u *User) Snapshot() UserInfo {
	u.mu.RLock()
	sessionID, online := u.sessionID, u.online
	u.mu.RUnlock()
	return UserInfo{
		Username:  u.Username,
		SessionID: sessionID,
		Online:    online,
		Rooms:     u.Rooms(),
	}
}
