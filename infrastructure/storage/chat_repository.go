package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"livechat/domain"
	"livechat/errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	chatPrefix        = "chat:"
	pendingAllPrefix  = "pending:all:"
	pendingDeptPrefix = "pending:dept:"
	assignedPrefix    = "assigned:"
)

// ChatRepository stores chats in BadgerDB with secondary index keys:
//
//	chat:{id}                                   -> chat document
//	pending:all:{created_at_padded}:{id}        -> "" while PENDING
//	pending:dept:{dept}:{created_at_padded}:{id} -> "" while PENDING with a department
//	assigned:{commercial}:{id}                  -> "" while ASSIGNED
//
// Index keys are rewritten in the same transaction as the document.
type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChatRepository(db *badger.DB, log *slog.Logger) *ChatRepository {
	return &ChatRepository{db: db, log: log}
}

type diskParticipant struct {
	ID        string `json:"id"`
	IsVisitor bool   `json:"is_visitor"`
}

type diskChat struct {
	ID                   string            `json:"id"`
	VisitorID            string            `json:"visitor_id"`
	Participants         []diskParticipant `json:"participants"`
	Priority             string            `json:"priority"`
	Status               string            `json:"status"`
	AssignedCommercialID *string           `json:"assigned_commercial_id,omitempty"`
	Department           string            `json:"department,omitempty"`
	CreatedAt            int64             `json:"created_at"`
	AssignedAt           *int64            `json:"assigned_at,omitempty"`
}

func (r *ChatRepository) FindByID(_ context.Context, chatID string) (domain.Chat, error) {
	var chat domain.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		chat, err = getChat(txn, chatID)
		return err
	})
	return chat, err
}

// Save writes a new chat with its indexes.
func (r *ChatRepository) Save(_ context.Context, chat domain.Chat) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return putChat(txn, chat)
	})
}

// Update replaces a chat only if its stored status is still expected.
// A concurrent writer on the same chat makes the commit fail with
// badger.ErrConflict, reported as ErrAssignmentConflict.
func (r *ChatRepository) Update(_ context.Context, chat domain.Chat, expected domain.ChatStatus) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		stored, err := getChat(txn, chat.ID)
		if err != nil {
			return err
		}
		if stored.Status != expected {
			return errors.ErrAssignmentConflict
		}
		for _, key := range indexKeys(stored) {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return putChat(txn, chat)
	})
	if stderrors.Is(err, badger.ErrConflict) {
		r.log.Debug("Concurrent chat update lost", "chat_id", chat.ID)
		return errors.ErrAssignmentConflict
	}
	return err
}

// CountPendingCreatedBefore counts pending chats created strictly before at,
// restricted to a department when one is given. Only index keys are read.
func (r *ChatRepository) CountPendingCreatedBefore(_ context.Context, at time.Time, department *string) (int, error) {
	prefix := []byte(pendingPrefix(department))
	limit := at.UnixNano()
	count := 0

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			createdAt, _, err := parsePendingKey(it.Item().Key()[len(prefix):])
			if err != nil {
				return err
			}
			if createdAt >= limit {
				break
			}
			count++
		}
		return nil
	})
	return count, err
}

// FindPending returns up to limit pending chats, oldest first.
func (r *ChatRepository) FindPending(_ context.Context, department *string, limit int) ([]domain.Chat, error) {
	prefix := []byte(pendingPrefix(department))
	var chats []domain.Chat

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(chats) < limit; it.Next() {
			_, chatID, err := parsePendingKey(it.Item().Key()[len(prefix):])
			if err != nil {
				return err
			}
			chat, err := getChat(txn, chatID)
			if err != nil {
				return err
			}
			chats = append(chats, chat)
		}
		return nil
	})
	return chats, err
}

// CountAssigned returns the number of ASSIGNED chats per commercial.
// Every requested commercial is present in the result, zero included.
func (r *ChatRepository) CountAssigned(_ context.Context, commercialIDs []string) (map[string]int, error) {
	counts := lo.SliceToMap(commercialIDs, func(id string) (string, int) { return id, 0 })

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for _, id := range commercialIDs {
			prefix := []byte(assignedPrefix + escape(id) + ":")
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				counts[id]++
			}
		}
		return nil
	})
	return counts, err
}

func getChat(txn *badger.Txn, chatID string) (domain.Chat, error) {
	item, err := txn.Get([]byte(chatPrefix + chatID))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Chat{}, errors.ErrChatNotFound
	}
	if err != nil {
		return domain.Chat{}, err
	}
	var disk diskChat
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &disk)
	}); err != nil {
		return domain.Chat{}, err
	}
	return toChat(disk), nil
}

func putChat(txn *badger.Txn, chat domain.Chat) error {
	data, err := json.Marshal(fromChat(chat))
	if err != nil {
		return err
	}
	if err := txn.Set([]byte(chatPrefix+chat.ID), data); err != nil {
		return err
	}
	for _, key := range indexKeys(chat) {
		if err := txn.Set(key, []byte{}); err != nil {
			return err
		}
	}
	return nil
}

func indexKeys(chat domain.Chat) [][]byte {
	switch chat.Status {
	case domain.PENDING:
		keys := [][]byte{[]byte(pendingKey(pendingAllPrefix, chat))}
		if chat.Metadata.Department != "" {
			keys = append(keys, []byte(pendingKey(pendingPrefix(&chat.Metadata.Department), chat)))
		}
		return keys
	case domain.ASSIGNED:
		if chat.AssignedCommercialID == nil {
			return nil
		}
		return [][]byte{[]byte(assignedPrefix + escape(*chat.AssignedCommercialID) + ":" + chat.ID)}
	default:
		return nil
	}
}

// pendingKey pads the creation time to 19 digits so keys sort chronologically.
func pendingKey(prefix string, chat domain.Chat) string {
	return fmt.Sprintf("%s%019d:%s", prefix, chat.CreatedAt.UnixNano(), chat.ID)
}

func pendingPrefix(department *string) string {
	if department == nil || *department == "" {
		return pendingAllPrefix
	}
	return pendingDeptPrefix + escape(*department) + ":"
}

func parsePendingKey(suffix []byte) (int64, string, error) {
	ts, chatID, ok := strings.Cut(string(suffix), ":")
	if !ok {
		return 0, "", fmt.Errorf("malformed pending key %q", suffix)
	}
	createdAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed pending key %q: %w", suffix, err)
	}
	return createdAt, chatID, nil
}

// escape keeps user-provided segments from introducing key separators:
// ':' becomes %3A so "sales:eu" never lands under the "sales" prefix.
func escape(segment string) string {
	return url.QueryEscape(segment)
}

func fromChat(chat domain.Chat) diskChat {
	disk := diskChat{
		ID:        chat.ID,
		VisitorID: chat.VisitorID,
		Participants: lo.Map(chat.Participants, func(p domain.Participant, _ int) diskParticipant {
			return diskParticipant{ID: p.ID, IsVisitor: p.IsVisitor}
		}),
		Priority:             string(chat.Priority),
		Status:               string(chat.Status),
		AssignedCommercialID: chat.AssignedCommercialID,
		Department:           chat.Metadata.Department,
		CreatedAt:            chat.CreatedAt.UnixNano(),
	}
	if chat.AssignedAt != nil {
		disk.AssignedAt = lo.ToPtr(chat.AssignedAt.UnixNano())
	}
	return disk
}

func toChat(disk diskChat) domain.Chat {
	chat := domain.Chat{
		ID:        disk.ID,
		VisitorID: disk.VisitorID,
		Participants: lo.Map(disk.Participants, func(p diskParticipant, _ int) domain.Participant {
			return domain.Participant{ID: p.ID, IsVisitor: p.IsVisitor}
		}),
		Priority:             domain.Priority(disk.Priority),
		Status:               domain.ChatStatus(disk.Status),
		AssignedCommercialID: disk.AssignedCommercialID,
		Metadata:             domain.ChatMetadata{Department: disk.Department},
		CreatedAt:            time.Unix(0, disk.CreatedAt).UTC(),
	}
	if disk.AssignedAt != nil {
		chat.AssignedAt = lo.ToPtr(time.Unix(0, *disk.AssignedAt).UTC())
	}
	return chat
}
