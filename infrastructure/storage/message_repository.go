package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/dgraph-io/badger/v4"
	"livechat/domain"
	"log/slog"
	"time"
)

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) *MessageRepository {
	return &MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

type diskMessage struct {
	ID         string `json:"id"`
	ChatID     string `json:"chat_id"`
	SenderKind string `json:"sender_kind"`
	SenderID   string `json:"sender_id,omitempty"`
	Content    string `json:"content"`
	At         int64  `json:"at"`
}

// Save persists a message in BadgerDB.
// The key is formatted as "msg:{chat_id}:{timestamp_padded}:{id}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Keep two messages of the same nanosecond apart thanks to the id suffix.
func (m *MessageRepository) Save(_ context.Context, message domain.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		escape(message.ChatID),
		message.CreatedAt.UnixNano(),
		message.ID,
	)
	bytes, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages pages backwards through a chat history, newest first.
// The returned cursor is the key suffix of the last message read; passing it
// back resumes right after it. It stops once limitMessages is reached.
func (m *MessageRepository) GetMessages(_ context.Context, chatID string, cursor *string) ([]domain.Message, *string, error) {
	var byteMessages [][]byte
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", escape(chatID))
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Start past the newest possible key and walk back
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[prefixLen:]) == *cursor {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(byteMessages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	messages := make([]domain.Message, 0, len(byteMessages))
	for _, b := range byteMessages {
		var disk diskMessage
		if err = json.Unmarshal(b, &disk); err != nil {
			return nil, nil, err
		}
		messages = append(messages, toMessage(disk))
	}
	if lastKey == "" {
		return messages, nil, nil
	}
	return messages, &lastKey, nil
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:         message.ID,
		ChatID:     message.ChatID,
		SenderKind: string(message.Sender.Kind),
		SenderID:   message.Sender.ID,
		Content:    message.Content,
		At:         message.CreatedAt.UnixNano(),
	}
}

func toMessage(disk diskMessage) domain.Message {
	return domain.Message{
		ID:        disk.ID,
		ChatID:    disk.ChatID,
		Sender:    domain.Sender{Kind: domain.SenderKind(disk.SenderKind), ID: disk.SenderID},
		Content:   disk.Content,
		CreatedAt: time.Unix(0, disk.At).UTC(),
	}
}
