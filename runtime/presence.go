package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"chat-core/domain"
	"chat-core/errors"
	"chat-core/observability"
)

// Presence keeps the user-side and room-side membership sets mutually
// consistent and emits JOIN/LEAVE system notifications through the
// router. The two sets are updated as independent mutations, not one
// transaction: under concurrent join/leave/disconnect on the same
// (user, room) pair one side can be briefly visible without the other.
type Presence struct {
	log    *slog.Logger
	users  *UserRegistry
	rooms  *RoomRegistry
	router *Router
	stats  *observability.CoreStats
}

func NewPresence(log *slog.Logger, users *UserRegistry, rooms *RoomRegistry,
	router *Router, stats *observability.CoreStats) *Presence {
	return &Presence{
		log:    log,
		users:  users,
		rooms:  rooms,
		router: router,
		stats:  stats,
	}
}

// Join adds the user to the room on both sides and broadcasts a JOIN
// notification. If either record is missing the call is a silent
// no-op. Joining an already-joined room re-emits the notification; the
// set updates themselves are idempotent.
func (p *Presence) Join(ctx context.Context, username, roomID string) {
	user, userOK := p.users.Get(username)
	room, roomOK := p.rooms.Get(roomID)
	if !userOK || !roomOK {
		p.stats.IncrDroppedCommands()
		p.log.Debug("Ignoring join", "username", username, "room", roomID,
			"reason", membershipFailure(userOK))
		return
	}

	user.JoinRoom(roomID)
	room.AddMember(username)
	p.stats.IncrJoinEvents()

	notification := domain.NewMessage(
		fmt.Sprintf("%s has joined the room", username),
		username, roomID, domain.TypeJoin,
	)
	p.router.Broadcast(ctx, notification)
}

// Leave is symmetric to Join and broadcasts a LEAVE notification.
func (p *Presence) Leave(ctx context.Context, username, roomID string) {
	user, userOK := p.users.Get(username)
	room, roomOK := p.rooms.Get(roomID)
	if !userOK || !roomOK {
		p.stats.IncrDroppedCommands()
		p.log.Debug("Ignoring leave", "username", username, "room", roomID,
			"reason", membershipFailure(userOK))
		return
	}

	user.LeaveRoom(roomID)
	room.RemoveMember(username)
	p.stats.IncrLeaveEvents()

	p.router.Broadcast(ctx, leaveNotification(username, roomID))
}

// Disconnect marks the user offline and, for every room in their
// membership set, removes them from the room-side set and broadcasts a
// LEAVE notification. The user's own room set is left untouched, so a
// later reconnect still shows the prior memberships.
func (p *Presence) Disconnect(ctx context.Context, username string) {
	user, ok := p.users.Get(username)
	if !ok {
		p.stats.IncrDroppedCommands()
		p.log.Debug("Ignoring disconnect", "username", username, "reason", errors.ErrUserNotFound)
		return
	}

	user.SetOffline()
	for _, roomID := range user.Rooms() {
		room, ok := p.rooms.Get(roomID)
		if !ok {
			continue
		}
		room.RemoveMember(username)
		p.stats.IncrLeaveEvents()
		p.router.Broadcast(ctx, leaveNotification(username, roomID))
	}
	p.log.Debug("User disconnected", "username", username)
}

// membershipFailure names which side of the (user, room) pair failed
// to resolve, for the drop log line.
func membershipFailure(userOK bool) error {
	if !userOK {
		return errors.ErrUserNotFound
	}
	return errors.ErrRoomNotFound
}

func leaveNotification(username, roomID string) domain.Message {
	return domain.NewMessage(
		fmt.Sprintf("%s has left the room", username),
		username, roomID, domain.TypeLeave,
	)
}
