package runtime

import (
	"log/slog"

	"chat-core/contract"
	"chat-core/observability"
	"chat-core/repositories"
)

// Core owns both registries and wires presence and routing around
// them. One Core is constructed per process; command handlers receive
// it explicitly, there is no ambient global state.
type Core struct {
	Users    *UserRegistry
	Rooms    *RoomRegistry
	Presence *Presence
	Router   *Router
	Stats    *observability.CoreStats
}

func NewCore(log *slog.Logger, sink contract.DeliverySink,
	history repositories.IHistoryRepository, stats *observability.CoreStats) *Core {
	users := NewUserRegistry(log, stats)
	rooms := NewRoomRegistry(log)
	router := NewRouter(log, rooms, history, sink, stats)
	presence := NewPresence(log, users, rooms, router, stats)

	return &Core{
		Users:    users,
		Rooms:    rooms,
		Presence: presence,
		Router:   router,
		Stats:    stats,
	}
}
