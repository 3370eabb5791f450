package internal

import (
	"context"
	"encoding/json"
	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"livechat/contract"
	"livechat/domain"
	"livechat/infrastructure/storage"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultInspectLimit = 100

type InspectRow struct {
	Key       string `json:"key"`
	Namespace string `json:"namespace"`
	Timestamp string `json:"timestamp"`
	EntityID  string `json:"entity_id"`
	Detail    string `json:"detail"`
}

type QueueRow struct {
	Position   int               `json:"position"`
	ChatID     string            `json:"chat_id"`
	VisitorID  string            `json:"visitor_id"`
	Priority   domain.Priority   `json:"priority"`
	Department string            `json:"department,omitempty"`
	Status     domain.ChatStatus `json:"status"`
	Waiting    string            `json:"waiting"`
}

type queueSnapshotter interface {
	Snapshot(ctx context.Context, department *string, limit int) ([]domain.QueueEntry, error)
}

type settingsStore interface {
	Settings(ctx context.Context) storage.QueueSettings
	SaveSettings(ctx context.Context, settings storage.QueueSettings) error
}

// DebugHandler serves read-mostly views of the store and the live state.
// Queue settings are the only thing it writes.
type DebugHandler struct {
	db       *badger.DB
	queue    queueSnapshotter
	settings settingsStore
	registry contract.IRegistry
	clock    func() time.Time
}

func NewDebugHandler(db *badger.DB, queue queueSnapshotter, settings settingsStore, registry contract.IRegistry) *DebugHandler {
	return &DebugHandler{db: db, queue: queue, settings: settings, registry: registry, clock: time.Now}
}

// Register mounts the routes under /debug/.
func (h *DebugHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/inspect", h.inspect)
	mux.HandleFunc("GET /debug/queue", h.queueSnapshot)
	mux.HandleFunc("GET /debug/settings", h.getSettings)
	mux.HandleFunc("PUT /debug/settings", h.putSettings)
	mux.HandleFunc("GET /debug/stats", h.stats)
}

func (h *DebugHandler) inspect(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = "pending:all:"
	}
	limit := intParam(r, "limit", defaultInspectLimit)

	var rows []InspectRow
	err := h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)) && len(rows) < limit; it.Next() {
			item := it.Item()
			rows = append(rows, KeyMapper(string(item.Key()), int(item.ValueSize())))
		}
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *DebugHandler) queueSnapshot(w http.ResponseWriter, r *http.Request) {
	var department *string
	if d := r.URL.Query().Get("department"); d != "" {
		department = &d
	}
	entries, err := h.queue.Snapshot(r.Context(), department, intParam(r, "limit", defaultInspectLimit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	now := h.clock()
	writeJSON(w, http.StatusOK, lo.Map(entries, func(e domain.QueueEntry, _ int) QueueRow {
		return QueueRow{
			Position:   e.Position,
			ChatID:     e.Chat.ID,
			VisitorID:  e.Chat.VisitorID,
			Priority:   e.Chat.Priority,
			Department: e.Chat.Metadata.Department,
			Status:     e.Chat.Status,
			Waiting:    now.Sub(e.Chat.CreatedAt).Truncate(time.Second).String(),
		}
	}))
}

func (h *DebugHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Settings(r.Context()))
}

func (h *DebugHandler) putSettings(w http.ResponseWriter, r *http.Request) {
	var settings storage.QueueSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if settings.MaxQueueWaitTime < 0 {
		http.Error(w, "max_queue_wait_time must not be negative", http.StatusBadRequest)
		return
	}
	if err := h.settings.SaveSettings(r.Context(), settings); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// stats counts live connections per role.
func (h *DebugHandler) stats(w http.ResponseWriter, _ *http.Request) {
	connected := h.registry.Find(domain.Where(domain.FieldConnected, domain.EQUALS, true))
	counts := map[domain.Role]int{}
	for _, user := range connected {
		for _, role := range user.Roles {
			counts[role]++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"connected": len(connected),
		"by_role":   counts,
	})
}

// KeyMapper splits the timestamped keys of the store, e.g.
// pending:all:{ts}:{chat} or msg:{chat}:{ts}:{id}. Other keys are shown raw.
func KeyMapper(key string, size int) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Namespace: parts[0],
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Detail:    "Size: " + strconv.Itoa(size) + " bytes",
	}
	if len(parts) < 4 {
		return row
	}
	ts := parts[len(parts)-2]
	if tsNano, err := strconv.ParseInt(ts, 10, 64); err == nil {
		row.Timestamp = time.Unix(0, tsNano).UTC().Format(time.RFC3339)
	}
	row.Namespace = strings.Join(parts[:len(parts)-2], ":")
	row.EntityID = parts[len(parts)-1]
	return row
}

func intParam(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
