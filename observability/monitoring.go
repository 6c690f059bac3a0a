package observability

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// StatsSnapshot aggregates the core counters for reporting.
type StatsSnapshot struct {
	Registrations     uint64 `json:"registrations"`
	BroadcastMessages uint64 `json:"broadcast_messages"`
	PrivateMessages   uint64 `json:"private_messages"`
	JoinEvents        uint64 `json:"join_events"`
	LeaveEvents       uint64 `json:"leave_events"`
	DroppedCommands   uint64 `json:"dropped_commands"`
}

// CoreStats counts what the core does, most importantly the commands
// it silently drops. Dropped commands never surface as errors to the
// caller, so this counter is the only way to observe them.
type CoreStats struct {
	log *slog.Logger

	registrations     atomic.Uint64
	broadcastMessages atomic.Uint64
	privateMessages   atomic.Uint64
	joinEvents        atomic.Uint64
	leaveEvents       atomic.Uint64
	droppedCommands   atomic.Uint64
}

func NewCoreStats(log *slog.Logger) *CoreStats {
	return &CoreStats{log: log}
}

func (s *CoreStats) IncrRegistrations()     { s.registrations.Add(1) }
func (s *CoreStats) IncrBroadcastMessages() { s.broadcastMessages.Add(1) }
func (s *CoreStats) IncrPrivateMessages()   { s.privateMessages.Add(1) }
func (s *CoreStats) IncrJoinEvents()        { s.joinEvents.Add(1) }
func (s *CoreStats) IncrLeaveEvents()       { s.leaveEvents.Add(1) }
func (s *CoreStats) IncrDroppedCommands()   { s.droppedCommands.Add(1) }

func (s *CoreStats) DroppedCommands() uint64 { return s.droppedCommands.Load() }

func (s *CoreStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Registrations:     s.registrations.Load(),
		BroadcastMessages: s.broadcastMessages.Load(),
		PrivateMessages:   s.privateMessages.Load(),
		JoinEvents:        s.joinEvents.Load(),
		LeaveEvents:       s.leaveEvents.Load(),
		DroppedCommands:   s.droppedCommands.Load(),
	}
}

// Listen periodically logs a snapshot until the context is canceled.
func (s *CoreStats) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snapshot := s.Snapshot()
			s.log.Info("Core stats",
				"registrations", snapshot.Registrations,
				"broadcast_messages", snapshot.BroadcastMessages,
				"private_messages", snapshot.PrivateMessages,
				"join_events", snapshot.JoinEvents,
				"leave_events", snapshot.LeaveEvents,
				"dropped_commands", snapshot.DroppedCommands,
			)
		}
	}
}
