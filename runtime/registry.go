package runtime

import (
	"github.com/samber/lo"
	"livechat/domain"
	"livechat/errors"
	"slices"
	"sync"
	"time"
)

// Registry is the authoritative in-memory presence table.
// One record per user, indexed by user and by transport handle.
// It is the only owner of connection state and never calls out.
type Registry struct {
	mu      sync.RWMutex
	users   map[string]*domain.ConnectionUser // map user -> connection
	sockets map[string]string                 // map socket -> user
	clock   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		users:   make(map[string]*domain.ConnectionUser),
		sockets: make(map[string]string),
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source, used to age records in tests.
func (r *Registry) WithClock(clock func() time.Time) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = clock
	return r
}

// Upsert registers a connection or refreshes an existing one.
// A new socketID for a known user replaces the stale one, so a user always
// has exactly one record. Calling it again with the held socket is a
// heartbeat: only LastSeenAt moves.
// The returned bool is true when a transport handle was (re)attached.
func (r *Registry) Upsert(userID string, role domain.Role, socketID string) (domain.ConnectionUser, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	user, ok := r.users[userID]
	if !ok {
		user = &domain.ConnectionUser{
			UserID:      userID,
			Roles:       []domain.Role{role},
			SocketID:    socketID,
			ConnectedAt: now,
			LastSeenAt:  now,
		}
		r.users[userID] = user
		r.sockets[socketID] = userID
		return clone(user), true
	}

	if !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}

	attached := false
	if user.SocketID != socketID || !user.IsConnected() {
		delete(r.sockets, user.SocketID)
		user.SocketID = socketID
		user.ConnectedAt = now
		user.DisconnectedAt = nil
		r.sockets[socketID] = userID
		attached = true
	}
	user.LastSeenAt = now
	return clone(user), attached
}

// Refresh is the heartbeat path. It only touches the record when socketID is
// the one held for userID: a socket replaced by a newer connection gets
// ErrSocketSuperseded and never takes the record back. A held socket expired
// by the presence monitor is reattached, the returned bool is then true.
func (r *Registry) Refresh(userID string, socketID string) (domain.ConnectionUser, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok || user.SocketID != socketID {
		return domain.ConnectionUser{}, false, errors.ErrSocketSuperseded
	}
	now := r.clock()
	attached := false
	if !user.IsConnected() {
		user.ConnectedAt = now
		user.DisconnectedAt = nil
		r.sockets[socketID] = userID
		attached = true
	}
	user.LastSeenAt = now
	return clone(user), attached, nil
}

// MarkDisconnected flips the record holding socketID to disconnected.
// Unknown or already replaced sockets are ignored: disconnects race with reconnects.
func (r *Registry) MarkDisconnected(socketID string) (domain.ConnectionUser, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.sockets[socketID]
	if !ok {
		return domain.ConnectionUser{}, false
	}
	user, ok := r.users[userID]
	if !ok || user.SocketID != socketID || !user.IsConnected() {
		return domain.ConnectionUser{}, false
	}
	user.DisconnectedAt = lo.ToPtr(r.clock())
	return clone(user), true
}

// FindOne returns the first record matching every criterion.
// Lookups by user or socket hit the indexes directly.
func (r *Registry) FindOne(criteria ...domain.Criterion) (domain.ConnectionUser, bool) {
	found := r.Find(criteria...)
	if len(found) == 0 {
		return domain.ConnectionUser{}, false
	}
	return found[0], true
}

// Find returns every record matching all criteria, oldest connection first.
// An empty result is a normal state, not a fault.
func (r *Registry) Find(criteria ...domain.Criterion) []domain.ConnectionUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.ConnectionUser
	for _, user := range r.candidates(criteria) {
		if domain.MatchAll(*user, criteria) {
			res = append(res, clone(user))
		}
	}
	slices.SortFunc(res, func(a, b domain.ConnectionUser) int {
		return a.ConnectedAt.Compare(b.ConnectedAt)
	})
	return res
}

// candidates narrows the scan with the first indexed equality criterion.
// Callers hold the read lock.
func (r *Registry) candidates(criteria []domain.Criterion) []*domain.ConnectionUser {
	for _, c := range criteria {
		if c.Operator != domain.EQUALS {
			continue
		}
		value, ok := c.Value.(string)
		if !ok {
			continue
		}
		switch c.Field {
		case domain.FieldUserID:
			if user, ok := r.users[value]; ok {
				return []*domain.ConnectionUser{user}
			}
			return nil
		case domain.FieldSocketID:
			if userID, ok := r.sockets[value]; ok {
				return []*domain.ConnectionUser{r.users[userID]}
			}
			return nil
		}
	}
	return lo.Values(r.users)
}

func clone(user *domain.ConnectionUser) domain.ConnectionUser {
	c := *user
	c.Roles = slices.Clone(user.Roles)
	if user.DisconnectedAt != nil {
		c.DisconnectedAt = lo.ToPtr(*user.DisconnectedAt)
	}
	return c
}
