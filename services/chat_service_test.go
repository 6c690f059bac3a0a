package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-core/domain"
	"chat-core/errors"
	"chat-core/mocks"
	"chat-core/observability"
	"chat-core/repositories"
	"chat-core/runtime"
)

func newService(t *testing.T) (*ChatService, *mocks.MockDeliverySink) {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.Default()
	mockSink := mocks.NewMockDeliverySink(ctrl)
	core := runtime.NewCore(log, mockSink,
		repositories.NewHistoryRepository(db, log), observability.NewCoreStats(log))
	return NewChatService(core, DefaultHistoryLimit), mockSink
}

func TestChatService_Register_Scenario(t *testing.T) {
	req := require.New(t)
	service, mockSink := newService(t)
	ctx := context.Background()

	// Register auto-joins general (JOIN) and the chat follows
	mockSink.EXPECT().
		PublishToRoom(gomock.Any(), domain.DefaultRoomID, gomock.Any()).
		Return(nil).
		Times(2)

	// When alice registers and greets the room
	user, err := service.Register(ctx, domain.RegisterCommand{Username: "alice", SessionID: "s1"})
	req.NoError(err)
	req.NoError(service.SendRoomMessage(ctx, domain.PostRoomMessageCommand{
		Room: domain.DefaultRoomID, Sender: "alice", Content: "hi",
	}))

	// Then the snapshot shows her online in general
	req.Equal("alice", user.Username)
	req.Equal("s1", user.SessionID)
	req.True(user.Online)
	req.Equal([]string{domain.DefaultRoomID}, user.Rooms)

	// And history ends with the chat, preceded by the join notice
	history := service.RoomHistory(domain.DefaultRoomID, 50)
	req.Len(history, 2)
	req.Equal(domain.TypeJoin, history[0].Type)
	req.Equal("alice has joined the room", history[0].Content)
	req.Equal(domain.TypeChat, history[1].Type)
	req.Equal("alice", history[1].Sender)
	req.Equal("hi", history[1].Content)
	req.Equal(domain.DefaultRoomID, history[1].RoomID)
}

func TestChatService_Register_Invalid_Command(t *testing.T) {
	req := require.New(t)
	service, _ := newService(t)

	_, err := service.Register(context.Background(), domain.RegisterCommand{Username: "alice"})

	req.ErrorIs(err, errors.ErrInvalidCommand)
}

func TestChatService_SendPrivate_Two_Deliveries_Without_Registration(t *testing.T) {
	req := require.New(t)
	service, mockSink := newService(t)

	// Recipient first, then the echo back to the sender
	gomock.InOrder(
		mockSink.EXPECT().PublishToUser(gomock.Any(), "casper", gomock.Any()).Return(nil),
		mockSink.EXPECT().PublishToUser(gomock.Any(), "ghost", gomock.Any()).Return(nil),
	)

	err := service.SendPrivateMessage(context.Background(), domain.PrivateMessageCommand{
		Sender: "ghost", Recipient: "casper", Content: "psst",
	})
	req.NoError(err)
}

func TestChatService_CreateRoom_Scenario(t *testing.T) {
	req := require.New(t)
	service, mockSink := newService(t)
	ctx := context.Background()

	mockSink.EXPECT().PublishToRoom(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := service.Register(ctx, domain.RegisterCommand{Username: "alice", SessionID: "s1"})
	req.NoError(err)

	// When a room is created and the creator joins it
	room, err := service.CreateRoom(domain.CreateRoomCommand{Name: "Dev"})
	req.NoError(err)
	req.NotEqual(domain.DefaultRoomID, room.ID)
	req.Empty(room.Members)
	req.Empty(service.RoomHistory(room.ID, 50))

	req.NoError(service.JoinRoom(ctx, domain.JoinRoomCommand{Username: "alice", Room: room.ID}))

	// Then the listing shows it with one member
	var listed *domain.RoomInfo
	for _, info := range service.ListRooms() {
		if info.ID == room.ID {
			listed = &info
			break
		}
	}
	req.NotNil(listed)
	req.Equal("Dev", listed.Name)
	req.Equal([]string{"alice"}, listed.Members)
}

func TestChatService_Disconnect_Scenario(t *testing.T) {
	req := require.New(t)
	service, mockSink := newService(t)
	ctx := context.Background()

	var mu sync.Mutex
	var published []domain.Message
	mockSink.EXPECT().
		PublishToRoom(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, message domain.Message) error {
			mu.Lock()
			defer mu.Unlock()
			published = append(published, message)
			return nil
		}).
		AnyTimes()

	_, err := service.Register(ctx, domain.RegisterCommand{Username: "alice", SessionID: "s1"})
	req.NoError(err)
	dev, err := service.CreateRoom(domain.CreateRoomCommand{Name: "Dev"})
	req.NoError(err)
	req.NoError(service.JoinRoom(ctx, domain.JoinRoomCommand{Username: "alice", Room: dev.ID}))

	// When alice disconnects while a member of two rooms
	service.Disconnect(ctx, "alice")

	// Then exactly one LEAVE per room was broadcast
	mu.Lock()
	leaveRooms := make([]string, 0, 2)
	for _, message := range published {
		if message.Type == domain.TypeLeave {
			leaveRooms = append(leaveRooms, message.RoomID)
		}
	}
	mu.Unlock()
	req.ElementsMatch([]string{domain.DefaultRoomID, dev.ID}, leaveRooms)

	// And she no longer shows up online
	req.Empty(service.ListOnlineUsers())
}

func TestChatService_RoomHistory_Falls_Back_To_Default_Limit(t *testing.T) {
	req := require.New(t)
	service, mockSink := newService(t)
	ctx := context.Background()

	mockSink.EXPECT().PublishToRoom(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := service.Register(ctx, domain.RegisterCommand{Username: "alice", SessionID: "s1"})
	req.NoError(err)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		req.NoError(service.SendRoomMessage(ctx, domain.PostRoomMessageCommand{
			Room: domain.DefaultRoomID, Sender: "alice", Content: fmt.Sprintf("message %d", i),
		}))
	}

	history := service.RoomHistory(domain.DefaultRoomID, 0)

	req.Len(history, DefaultHistoryLimit)
	req.Equal(fmt.Sprintf("message %d", DefaultHistoryLimit+4), history[len(history)-1].Content)
}

func TestChatService_Send_To_Unknown_Room_Is_Silent(t *testing.T) {
	req := require.New(t)
	service, _ := newService(t)

	// No publish expectation: the command must be dropped quietly
	err := service.SendRoomMessage(context.Background(), domain.PostRoomMessageCommand{
		Room: "nowhere", Sender: "alice", Content: "hi",
	})

	req.NoError(err)
}
