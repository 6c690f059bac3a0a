package domain

// Commands are the inbound surface consumed from the transport layer.
// The acting username is derived from the transport session by the
// caller; the core trusts it as-is.

type RegisterCommand struct {
	Username  string `validate:"required"`
	SessionID string `validate:"required"`
}

type PostRoomMessageCommand struct {
	Room    string `validate:"required"`
	Sender  string `validate:"required"`
	Content string `validate:"required"`
}

type PrivateMessageCommand struct {
	Sender    string `validate:"required"`
	Recipient string `validate:"required"`
	Content   string `validate:"required"`
}

type JoinRoomCommand struct {
	Username string `validate:"required"`
	Room     string `validate:"required"`
}

type LeaveRoomCommand struct {
	Username string `validate:"required"`
	Room     string `validate:"required"`
}

type CreateRoomCommand struct {
	Name string `validate:"required"`
}
