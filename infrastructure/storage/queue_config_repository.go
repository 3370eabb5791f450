package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"github.com/dgraph-io/badger/v4"
	"livechat/domain"
	"log/slog"
	"time"
)

const queueConfigKey = "config:queue"

// QueueSettings is the site-level queue behaviour.
type QueueSettings struct {
	UseQueue          bool          `json:"use_queue"`
	MaxQueueWaitTime  time.Duration `json:"max_queue_wait_time"`
	UrgentBypassQueue bool          `json:"urgent_bypass_queue"`
}

// QueueConfigRepository serves queue settings stored under config:queue,
// falling back to the defaults it was built with while nothing is stored.
type QueueConfigRepository struct {
	db       *badger.DB
	log      *slog.Logger
	defaults QueueSettings
}

func NewQueueConfigRepository(db *badger.DB, log *slog.Logger, defaults QueueSettings) *QueueConfigRepository {
	return &QueueConfigRepository{db: db, log: log, defaults: defaults}
}

// ShouldUseQueue is false for urgent chats when they bypass the queue.
func (q *QueueConfigRepository) ShouldUseQueue(ctx context.Context, chatID string, priority domain.Priority) bool {
	settings := q.Settings(ctx)
	if priority == domain.URGENT && settings.UrgentBypassQueue {
		q.log.Debug("Urgent chat bypasses the queue", "chat_id", chatID)
		return false
	}
	return settings.UseQueue
}

func (q *QueueConfigRepository) MaxQueueWaitTime(ctx context.Context) time.Duration {
	return q.Settings(ctx).MaxQueueWaitTime
}

// Settings never fails: unreadable settings degrade to the defaults.
func (q *QueueConfigRepository) Settings(_ context.Context) QueueSettings {
	settings := q.defaults
	err := q.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(queueConfigKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &settings)
		})
	})
	switch {
	case err == nil:
		return settings
	case stderrors.Is(err, badger.ErrKeyNotFound):
		return q.defaults
	default:
		q.log.Warn("Queue settings unreadable, using defaults", "error", err)
		return q.defaults
	}
}

func (q *QueueConfigRepository) SaveSettings(_ context.Context, settings QueueSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return q.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(queueConfigKey), data)
	})
}
