package observability

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoreStats_Snapshot(t *testing.T) {
	req := require.New(t)
	stats := NewCoreStats(slog.Default())

	stats.IncrRegistrations()
	stats.IncrBroadcastMessages()
	stats.IncrBroadcastMessages()
	stats.IncrDroppedCommands()

	snapshot := stats.Snapshot()
	req.Equal(uint64(1), snapshot.Registrations)
	req.Equal(uint64(2), snapshot.BroadcastMessages)
	req.Equal(uint64(1), snapshot.DroppedCommands)
	req.Zero(snapshot.PrivateMessages)
}

func TestCoreStats_Concurrent_Increments(t *testing.T) {
	req := require.New(t)
	stats := NewCoreStats(slog.Default())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.IncrDroppedCommands()
		}()
	}
	wg.Wait()

	req.Equal(uint64(50), stats.DroppedCommands())
}
