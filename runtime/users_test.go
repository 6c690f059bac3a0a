package runtime

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-core/observability"
)

func newUserRegistry() *UserRegistry {
	log := slog.Default()
	return NewUserRegistry(log, observability.NewCoreStats(log))
}

func TestUserRegistry_Register_Twice_Yields_One_Record(t *testing.T) {
	req := require.New(t)
	registry := newUserRegistry()

	// Given a registered user who joined a room
	first := registry.Register("alice", "s1")
	first.JoinRoom("dev")

	// When the same username registers again with a new session
	second := registry.Register("alice", "s2")

	// Then the record is reused, rebound and still a member of dev
	req.Same(first, second)
	req.Equal("s2", second.SessionID())
	req.True(second.Online())
	req.Equal([]string{"dev"}, second.Rooms())
}

func TestUserRegistry_Get_Unknown_User(t *testing.T) {
	req := require.New(t)
	registry := newUserRegistry()

	_, ok := registry.Get("nobody")
	req.False(ok)
}

func TestUserRegistry_ListOnline_Filters_And_Sorts(t *testing.T) {
	req := require.New(t)
	registry := newUserRegistry()

	registry.Register("clara", "s3")
	registry.Register("alice", "s1")
	bob := registry.Register("bob", "s2")
	bob.SetOffline()

	online := registry.ListOnline()

	req.Len(online, 2)
	req.Equal("alice", online[0].Username)
	req.Equal("clara", online[1].Username)
}
