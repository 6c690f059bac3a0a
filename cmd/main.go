package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-core/internal"
	"chat-core/observability"
	"chat-core/repositories"
	"chat-core/runtime"
	"chat-core/services"
	"chat-core/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and blocks until a shutdown signal.
// Keeping the logic out of main ensures the deferred cleanup (badger
// close) always executes and keeps the wiring testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. History store (BadgerDB, in-memory unless a path is set)
	options := badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING)
	if config.BadgerFilepath == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return fmt.Errorf("history store opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing history store...")
		_ = db.Close()
	}()

	// 3. Core assembly
	stats := observability.NewCoreStats(log)
	history := repositories.NewHistoryRepository(db, log)
	deliverySink := sink.NewChannelSink(config.BufferSize)
	core := runtime.NewCore(log, deliverySink, history, stats)
	service := services.NewChatService(core, config.DefaultHistoryLimit)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Observability: periodic stats log + inspect page
	go stats.Listen(ctx, config.StatsInterval)

	statsProvider := func() map[string]any {
		snapshot := stats.Snapshot()
		return map[string]any{
			"rooms":              len(service.ListRooms()),
			"online_users":       len(service.ListOnlineUsers()),
			"registrations":      snapshot.Registrations,
			"broadcast_messages": snapshot.BroadcastMessages,
			"private_messages":   snapshot.PrivateMessages,
			"dropped_commands":   snapshot.DroppedCommands,
		}
	}
	internal.StartDebugServer(db, config.DebugPort, "/inspect", MessageMapper, statsProvider)
	log.Info("Inspect page available", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))

	// 6. The transport layer (out of process scope here) would now
	// subscribe deliverySink channels and feed commands into service.
	log.Info("Chat core ready", "default_room", "general")

	<-ctx.Done()
	log.Info("Shutting down gracefully...")
	return nil
}

// MessageMapper enriches the inspect rows with the decoded payload.
func MessageMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)

	var message repositories.StoredMessage
	if err := json.Unmarshal(val, &message); err != nil {
		return row
	}
	row.Kind = message.Type
	row.Sender = message.Sender
	row.Detail = message.Content
	return row
}
