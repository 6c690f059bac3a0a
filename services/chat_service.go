package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"chat-core/domain"
	"chat-core/errors"
	"chat-core/runtime"
)

var validate = validator.New()

// DefaultHistoryLimit caps history reads when the caller does not ask
// for a specific count.
const DefaultHistoryLimit = 50

type IChatService interface {
	Register(ctx context.Context, cmd domain.RegisterCommand) (domain.UserInfo, error)
	Disconnect(ctx context.Context, username string)
	SendRoomMessage(ctx context.Context, cmd domain.PostRoomMessageCommand) error
	SendPrivateMessage(ctx context.Context, cmd domain.PrivateMessageCommand) error
	JoinRoom(ctx context.Context, cmd domain.JoinRoomCommand) error
	LeaveRoom(ctx context.Context, cmd domain.LeaveRoomCommand) error
	CreateRoom(cmd domain.CreateRoomCommand) (domain.RoomInfo, error)
	ListRooms() []domain.RoomInfo
	ListOnlineUsers() []domain.UserInfo
	RoomHistory(roomID string, limit int) []domain.Message
}

// ChatService is the inbound command surface the transport layer
// calls. Commands are validated syntactically; beyond that the core
// never surfaces NotFound conditions back to the caller. Unresolvable
// actors or targets degrade to silent no-ops, visible only through
// the core stats counters.
type ChatService struct {
	core         *runtime.Core
	historyLimit int
}

func NewChatService(core *runtime.Core, historyLimit int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &ChatService{core: core, historyLimit: historyLimit}
}

// Register binds the session, flips the user online and auto-joins
// the default room. The returned snapshot reflects the state after the
// auto-join.
func (s *ChatService) Register(ctx context.Context, cmd domain.RegisterCommand) (domain.UserInfo, error) {
	if err := validateCommand(cmd); err != nil {
		return domain.UserInfo{}, err
	}
	user := s.core.Users.Register(cmd.Username, cmd.SessionID)
	s.core.Presence.Join(ctx, cmd.Username, domain.DefaultRoomID)
	return user.Snapshot(), nil
}

func (s *ChatService) Disconnect(ctx context.Context, username string) {
	s.core.Presence.Disconnect(ctx, username)
}

// SendRoomMessage broadcasts a CHAT message to a room.
func (s *ChatService) SendRoomMessage(ctx context.Context, cmd domain.PostRoomMessageCommand) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	s.core.Router.Broadcast(ctx, domain.NewMessage(cmd.Content, cmd.Sender, cmd.Room, domain.TypeChat))
	return nil
}

// SendPrivateMessage delivers to the recipient and echoes to the
// sender, whether or not either of them is registered.
func (s *ChatService) SendPrivateMessage(ctx context.Context, cmd domain.PrivateMessageCommand) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	message := domain.NewMessage(cmd.Content, cmd.Sender, "", domain.TypePrivate)
	message.Recipient = cmd.Recipient
	s.core.Router.SendPrivate(ctx, message)
	return nil
}

func (s *ChatService) JoinRoom(ctx context.Context, cmd domain.JoinRoomCommand) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	s.core.Presence.Join(ctx, cmd.Username, cmd.Room)
	return nil
}

func (s *ChatService) LeaveRoom(ctx context.Context, cmd domain.LeaveRoomCommand) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	s.core.Presence.Leave(ctx, cmd.Username, cmd.Room)
	return nil
}

// CreateRoom creates an empty room under a generated id. The caller is
// expected to join the creator immediately afterwards.
func (s *ChatService) CreateRoom(cmd domain.CreateRoomCommand) (domain.RoomInfo, error) {
	if err := validateCommand(cmd); err != nil {
		return domain.RoomInfo{}, err
	}
	return s.core.Rooms.Create(cmd.Name).Snapshot(), nil
}

func (s *ChatService) ListRooms() []domain.RoomInfo {
	return s.core.Rooms.List()
}

func (s *ChatService) ListOnlineUsers() []domain.UserInfo {
	return s.core.Users.ListOnline()
}

// RoomHistory returns the most recent messages of a room in
// chronological order. A non-positive limit falls back to the
// configured default.
func (s *ChatService) RoomHistory(roomID string, limit int) []domain.Message {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.core.Router.History(roomID, limit)
}

func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
