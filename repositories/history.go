//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=../mocks/mock_history_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IHistoryRepository interface {
	Append(message StoredMessage) error
	Recent(roomID string, limit int) ([]StoredMessage, error)
}

// HistoryRepository keeps per-room message history in BadgerDB.
// Storage is append-only and unbounded; truncation happens at read
// time. The cmd layer opens badger in memory by default, so nothing
// survives a restart.
type HistoryRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewHistoryRepository(db *badger.DB, log *slog.Logger) HistoryRepository {
	return HistoryRepository{db: db, log: log}
}

// StoredMessage is the repository-level representation of a routed
// room message. Seq is the router-assigned per-room sequence number
// reflecting the order broadcasts were accepted.
type StoredMessage struct {
	ID        uuid.UUID `json:"id"`
	Room      string    `json:"room"`
	Seq       uint64    `json:"seq"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Append persists a message in BadgerDB.
// The key is formatted as "msg:{room_id}:{seq_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order matches accept order).
//  2. Keep keys unique through the message UUID even if a sequence
//     were ever reused.
func (h HistoryRepository) Append(message StoredMessage) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.Room,
		message.Seq,
		message.ID,
	)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// Recent retrieves the most recent messages for a room using a reverse
// prefix scan, then flips the result back to chronological order.
// Thanks to the padded sequence in the key, no sorting is needed.
// An unknown room simply yields an empty result.
func (h HistoryRepository) Recent(roomID string, limit int) ([]StoredMessage, error) {
	if limit <= 0 {
		return nil, nil
	}
	var raw [][]byte
	err := h.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", roomID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible sequence, then walk backwards.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(raw) == limit {
				h.log.Debug(fmt.Sprintf("History read capped at %d messages", limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte{}, value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]StoredMessage, 0, len(raw))
	for _, b := range raw {
		var message StoredMessage
		if err = json.Unmarshal(b, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return lo.Reverse(messages), nil
}
