package runtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-core/contract"
	"chat-core/domain"
	"chat-core/errors"
	"chat-core/observability"
	"chat-core/repositories"
)

// roomSequencer is the per-room serialization point: broadcasts for a
// room take its lock so the history append order matches the order the
// router accepted them, independently of registry-level locking.
type roomSequencer struct {
	mu  sync.Mutex
	seq uint64
}

func (s *roomSequencer) next() uint64 {
	s.seq++
	return s.seq
}

// Router validates destinations, stamps message identity, appends room
// messages to history and hands deliveries to the sink. Sink calls are
// fire-and-forget: errors are logged and swallowed.
type Router struct {
	log     *slog.Logger
	rooms   *RoomRegistry
	history repositories.IHistoryRepository
	sink    contract.DeliverySink
	stats   *observability.CoreStats

	mu         sync.Mutex
	sequencers map[string]*roomSequencer
}

func NewRouter(log *slog.Logger, rooms *RoomRegistry,
	history repositories.IHistoryRepository, sink contract.DeliverySink,
	stats *observability.CoreStats) *Router {
	return &Router{
		log:        log,
		rooms:      rooms,
		history:    history,
		sink:       sink,
		stats:      stats,
		sequencers: make(map[string]*roomSequencer),
	}
}

func (r *Router) sequencer(roomID string) *roomSequencer {
	r.mu.Lock()
	defer r.mu.Unlock()
	sequencer, ok := r.sequencers[roomID]
	if !ok {
		sequencer = &roomSequencer{}
		r.sequencers[roomID] = sequencer
	}
	return sequencer
}

// Broadcast routes a room-scoped message. An unresolvable room id
// silently drops the message. On success the message gets a fresh id,
// is appended to the room history and published on the room channel.
func (r *Router) Broadcast(ctx context.Context, message domain.Message) {
	if _, ok := r.rooms.Get(message.RoomID); !ok {
		r.stats.IncrDroppedCommands()
		r.log.Debug("Dropping message", "room", message.RoomID, "reason", errors.ErrRoomNotFound)
		return
	}

	sequencer := r.sequencer(message.RoomID)
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	message.ID = uuid.New()
	if err := r.history.Append(toStoredMessage(message, sequencer.next())); err != nil {
		r.log.Warn("History append failed", "room", message.RoomID, "error", err)
	}
	if err := r.sink.PublishToRoom(ctx, message.RoomID, message); err != nil {
		r.log.Warn("Room publish failed", "room", message.RoomID, "error", err)
	}
	r.stats.IncrBroadcastMessages()
}

// SendPrivate forces the private type, stamps a fresh id and publishes
// twice: to the recipient and back to the sender as an echo. Neither
// identity is checked; the sink tolerates unknown destinations.
func (r *Router) SendPrivate(ctx context.Context, message domain.Message) {
	message.Type = domain.TypePrivate
	message.ID = uuid.New()

	if err := r.sink.PublishToUser(ctx, message.Recipient, message); err != nil {
		r.log.Warn("Private publish failed", "recipient", message.Recipient, "error", err)
	}
	if err := r.sink.PublishToUser(ctx, message.Sender, message); err != nil {
		r.log.Warn("Private echo failed", "sender", message.Sender, "error", err)
	}
	r.stats.IncrPrivateMessages()
}

// History returns the most recent count messages of a room in
// chronological order, or nothing for an unknown room.
func (r *Router) History(roomID string, count int) []domain.Message {
	if _, ok := r.rooms.Get(roomID); !ok {
		return nil
	}
	stored, err := r.history.Recent(roomID, count)
	if err != nil {
		r.log.Warn("History read failed", "room", roomID, "error", err)
		return nil
	}
	return fromStoredMessages(stored)
}

func toStoredMessage(message domain.Message, seq uint64) repositories.StoredMessage {
	return repositories.StoredMessage{
		ID:        message.ID,
		Room:      message.RoomID,
		Seq:       seq,
		Sender:    message.Sender,
		Content:   message.Content,
		Type:      string(message.Type),
		CreatedAt: message.CreatedAt,
	}
}

func fromStoredMessages(stored []repositories.StoredMessage) []domain.Message {
	return lo.Map(stored, func(item repositories.StoredMessage, _ int) domain.Message {
		return domain.Message{
			ID:        item.ID,
			RoomID:    item.Room,
			Sender:    item.Sender,
			Content:   item.Content,
			Type:      domain.MessageType(item.Type),
			CreatedAt: item.CreatedAt,
		}
	})
}
