package sink

import (
	"context"
	"sync"

	"chat-core/contract"
	"chat-core/domain"
)

// Static assertion that the reference sink satisfies the contract.
var _ contract.DeliverySink = (*ChannelSink)(nil)

// ChannelSink is the reference DeliverySink: one buffered channel per
// subscribed room and per subscribed user. The transport layer
// subscribes the destinations it serves and drains the channels.
//
// Publishing to a destination nobody subscribed is a no-op, as the
// sink contract requires. A full buffer drops the delivery rather
// than blocking the core.
type ChannelSink struct {
	mu         sync.RWMutex
	bufferSize int
	rooms      map[string]chan domain.Message
	users      map[string]chan domain.Message
}

func NewChannelSink(bufferSize int) *ChannelSink {
	return &ChannelSink{
		bufferSize: bufferSize,
		rooms:      make(map[string]chan domain.Message),
		users:      make(map[string]chan domain.Message),
	}
}

// SubscribeRoom returns the delivery channel for a room, creating it
// on first use.
func (s *ChannelSink) SubscribeRoom(roomID string) <-chan domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	channel, ok := s.rooms[roomID]
	if !ok {
		channel = make(chan domain.Message, s.bufferSize)
		s.rooms[roomID] = channel
	}
	return channel
}

// SubscribeUser returns the delivery channel for a user, creating it
// on first use.
func (s *ChannelSink) SubscribeUser(username string) <-chan domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	channel, ok := s.users[username]
	if !ok {
		channel = make(chan domain.Message, s.bufferSize)
		s.users[username] = channel
	}
	return channel
}

func (s *ChannelSink) PublishToRoom(ctx context.Context, roomID string, message domain.Message) error {
	s.mu.RLock()
	channel, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return push(ctx, channel, message)
}

func (s *ChannelSink) PublishToUser(ctx context.Context, username string, message domain.Message) error {
	s.mu.RLock()
	channel, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return push(ctx, channel, message)
}

func push(ctx context.Context, channel chan domain.Message, message domain.Message) error {
	select {
	case channel <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Backpressure: the consumer is behind, drop the delivery.
		return nil
	}
}
