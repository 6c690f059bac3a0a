// Package runtime owns the shared mutable state of the chat core:
// the user and room registries, presence transitions, and message
// routing. It coordinates without containing transport logic.
package runtime

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"

	"chat-core/domain"
	"chat-core/observability"
)

// UserRegistry maps usernames to their single User record. Records are
// created on first registration and kept for the process lifetime.
type UserRegistry struct {
	mu    sync.RWMutex
	log   *slog.Logger
	stats *observability.CoreStats
	users map[string]*domain.User
}

func NewUserRegistry(log *slog.Logger, stats *observability.CoreStats) *UserRegistry {
	return &UserRegistry{
		log:   log,
		stats: stats,
		users: make(map[string]*domain.User),
	}
}

// Register creates the user if absent, otherwise reuses the existing
// record, then binds the session and flips the user online. Prior room
// memberships survive re-registration. Never fails.
func (r *UserRegistry) Register(username, sessionID string) *domain.User {
	r.mu.Lock()
	user, ok := r.users[username]
	if !ok {
		user = domain.NewUser(username)
		r.users[username] = user
	}
	r.mu.Unlock()

	user.Bind(sessionID)
	r.stats.IncrRegistrations()
	r.log.Debug("User registered", "username", username)
	return user
}

func (r *UserRegistry) Get(username string) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	return user, ok
}

// ListOnline snapshots every user currently online, sorted by username.
func (r *UserRegistry) ListOnline() []domain.UserInfo {
	r.mu.RLock()
	users := lo.Values(r.users)
	r.mu.RUnlock()

	online := lo.Filter(users, func(user *domain.User, _ int) bool {
		return user.Online()
	})
	infos := lo.Map(online, func(user *domain.User, _ int) domain.UserInfo {
		return user.Snapshot()
	})
	sort.Slice(infos, func(i, j int) bool { return infos[i].Username < infos[j].Username })
	return infos
}
