// In-process scenario driver: exercises the chat core end to end
// without any transport and prints the resulting state as tables.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"chat-core/domain"
	"chat-core/observability"
	"chat-core/repositories"
	"chat-core/runtime"
	"chat-core/services"
	"chat-core/sink"
)

func main() {
	ctx := context.Background()
	logger := logs.GetLoggerFromString("warn")

	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer db.Close()

	stats := observability.NewCoreStats(logger)
	deliverySink := sink.NewChannelSink(64)
	core := runtime.NewCore(logger, deliverySink,
		repositories.NewHistoryRepository(db, logger), stats)
	service := services.NewChatService(core, services.DefaultHistoryLimit)

	// Subscribe before publishing so deliveries are observable.
	generalFeed := deliverySink.SubscribeRoom(domain.DefaultRoomID)
	aliceFeed := deliverySink.SubscribeUser("alice")

	color.Cyan.Println("== Scenario: alice and bob ==")

	if _, err := service.Register(ctx, domain.RegisterCommand{Username: "alice", SessionID: "s1"}); err != nil {
		log.Fatalf("register alice: %v", err)
	}
	if _, err := service.Register(ctx, domain.RegisterCommand{Username: "bob", SessionID: "s2"}); err != nil {
		log.Fatalf("register bob: %v", err)
	}

	devRoom, err := service.CreateRoom(domain.CreateRoomCommand{Name: "Dev"})
	if err != nil {
		log.Fatalf("create room: %v", err)
	}
	_ = service.JoinRoom(ctx, domain.JoinRoomCommand{Username: "alice", Room: devRoom.ID})
	_ = service.JoinRoom(ctx, domain.JoinRoomCommand{Username: "bob", Room: devRoom.ID})

	_ = service.SendRoomMessage(ctx, domain.PostRoomMessageCommand{Room: domain.DefaultRoomID, Sender: "alice", Content: "hi everyone"})
	_ = service.SendRoomMessage(ctx, domain.PostRoomMessageCommand{Room: devRoom.ID, Sender: "bob", Content: "standup in 5"})
	_ = service.SendPrivateMessage(ctx, domain.PrivateMessageCommand{Sender: "bob", Recipient: "alice", Content: "psst"})

	color.Green.Println("\nOnline users")
	usersTable := tablewriter.NewWriter(os.Stdout)
	usersTable.SetHeader([]string{"Username", "Session", "Rooms"})
	for _, user := range service.ListOnlineUsers() {
		usersTable.Append([]string{user.Username, user.SessionID, fmt.Sprintf("%v", user.Rooms)})
	}
	usersTable.Render()

	color.Green.Println("\nRooms")
	roomsTable := tablewriter.NewWriter(os.Stdout)
	roomsTable.SetHeader([]string{"ID", "Name", "Members"})
	for _, room := range service.ListRooms() {
		roomsTable.Append([]string{room.ID, room.Name, fmt.Sprintf("%v", room.Members)})
	}
	roomsTable.Render()

	for _, roomID := range []string{domain.DefaultRoomID, devRoom.ID} {
		color.Green.Printf("\nHistory of %s\n", roomID)
		historyTable := tablewriter.NewWriter(os.Stdout)
		historyTable.SetHeader([]string{"Time", "Type", "Sender", "Content"})
		for _, message := range service.RoomHistory(roomID, 0) {
			historyTable.Append([]string{
				message.CreatedAt.Format("15:04:05"),
				string(message.Type),
				message.Sender,
				message.Content,
			})
		}
		historyTable.Render()
	}

	color.Yellow.Printf("\nDeliveries pending on %q feed: %d\n", domain.DefaultRoomID, len(generalFeed))
	color.Yellow.Printf("Deliveries pending on alice's feed: %d\n", len(aliceFeed))

	snapshot := stats.Snapshot()
	color.Cyan.Printf("\nStats: %d broadcasts, %d privates, %d dropped\n",
		snapshot.BroadcastMessages, snapshot.PrivateMessages, snapshot.DroppedCommands)
}
