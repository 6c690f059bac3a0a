//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-core/domain"
	"context"
)

// DeliverySink is the outbound publish primitive the core calls to hand
// an outgoing message to the transport layer. The transport owns the
// mapping from room/user channels to connected sessions; publishing to
// an unknown destination must be a no-op for the sink.
//
// The core treats publishes as fire-and-forget: returned errors are
// logged, never propagated.
type DeliverySink interface {
	PublishToRoom(ctx context.Context, roomID string, message domain.Message) error
	PublishToUser(ctx context.Context, username string, message domain.Message) error
}
