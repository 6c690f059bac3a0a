// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once the router has stamped them.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	TypeChat    MessageType = "CHAT"
	TypeJoin    MessageType = "JOIN"
	TypeLeave   MessageType = "LEAVE"
	TypePrivate MessageType = "PRIVATE"
)

// Message represents a chat event. RoomID is only meaningful for
// room-scoped types; Recipient only for PRIVATE. ID and, for private
// sends, Type are stamped by the router just before dispatch.
type Message struct {
	ID        uuid.UUID
	RoomID    string
	Sender    string
	Recipient string
	Content   string
	Type      MessageType
	CreatedAt time.Time
}

// NewMessage builds a message with its creation time already set.
func NewMessage(content, sender, roomID string, messageType MessageType) Message {
	return Message{
		RoomID:    roomID,
		Sender:    sender,
		Content:   content,
		Type:      messageType,
		CreatedAt: time.Now().UTC(),
	}
}
