package runtime

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"chat-core/domain"
	"chat-core/observability"
	"chat-core/repositories"
)

// recordingSink captures every publish so tests can assert on the
// delivery fan-out without a transport.
type recordingSink struct {
	mu    sync.Mutex
	rooms []delivery
	users []delivery
}

type delivery struct {
	destination string
	message     domain.Message
}

func (s *recordingSink) PublishToRoom(_ context.Context, roomID string, message domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = append(s.rooms, delivery{destination: roomID, message: message})
	return nil
}

func (s *recordingSink) PublishToUser(_ context.Context, username string, message domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, delivery{destination: username, message: message})
	return nil
}

func (s *recordingSink) roomDeliveries(roomID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	matching := lo.Filter(s.rooms, func(d delivery, _ int) bool {
		return d.destination == roomID
	})
	return lo.Map(matching, func(d delivery, _ int) domain.Message { return d.message })
}

func (s *recordingSink) userDeliveries() []delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]delivery{}, s.users...)
}

func (s *recordingSink) roomPublishCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

func newTestCore(t *testing.T) (*Core, *recordingSink) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.Default()
	sink := &recordingSink{}
	stats := observability.NewCoreStats(log)
	core := NewCore(log, sink, repositories.NewHistoryRepository(db, log), stats)
	return core, sink
}

func TestNewCore_Seeds_The_Default_Room(t *testing.T) {
	req := require.New(t)
	core, _ := newTestCore(t)

	room, ok := core.Rooms.Get(domain.DefaultRoomID)
	req.True(ok)
	req.Equal("General", room.Name)
	req.Empty(room.Members())
}
