package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"livechat/contract"
	"livechat/domain"
	"livechat/errors"
	"livechat/observability"
	"log/slog"
	"sync"
	"time"
)

// Notifier pushes notifications to the sinks the transport bound to each socket.
//
// Delivery is best-effort: one slow or failing sink never blocks the others,
// and nothing is queued for users who are offline.
type Notifier struct {
	mu          sync.RWMutex
	log         *slog.Logger
	registry    contract.IRegistry
	sinks       map[string]contract.EventSink // map socket -> sink
	sinkTimeout time.Duration
	metrics     *observability.Metrics
}

func NewNotifier(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration, metrics *observability.Metrics) *Notifier {
	return &Notifier{
		log:         log,
		registry:    registry,
		sinks:       make(map[string]contract.EventSink),
		sinkTimeout: sinkTimeout,
		metrics:     metrics,
	}
}

// Bind attaches the transport sink of a socket.
func (n *Notifier) Bind(socketID string, sink contract.EventSink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks[socketID] = sink
}

func (n *Notifier) Unbind(socketID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.sinks, socketID)
}

// Notify pushes to the live connection of recipientID.
// It returns ErrNotConnected when the user has no live connection.
func (n *Notifier) Notify(ctx context.Context, recipientID string, kind domain.NotificationType, payload any) error {
	user, ok := n.registry.FindOne(
		domain.Where(domain.FieldUserID, domain.EQUALS, recipientID),
		domain.Where(domain.FieldConnected, domain.EQUALS, true),
	)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrNotConnected, recipientID)
	}
	err := n.push(ctx, user, kind, payload)
	n.metrics.Notification(string(kind), err)
	return err
}

// NotifyRole pushes to every live connection holding role, in parallel.
// Failures are joined; a failing recipient does not stop the others.
func (n *Notifier) NotifyRole(ctx context.Context, role domain.Role, kind domain.NotificationType, payload any) error {
	users := n.registry.Find(
		domain.Where(domain.FieldRoles, domain.EQUALS, role),
		domain.Where(domain.FieldConnected, domain.EQUALS, true),
	)
	if len(users) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(users))
	for _, user := range users {
		wg.Add(1)
		go func(u domain.ConnectionUser) {
			defer wg.Done()
			err := n.push(ctx, u, kind, payload)
			n.metrics.Notification(string(kind), err)
			if err != nil {
				errs <- err
			}
		}(user)
	}
	wg.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}
	return stderrors.Join(all...)
}

func (n *Notifier) push(ctx context.Context, user domain.ConnectionUser, kind domain.NotificationType, payload any) error {
	n.mu.RLock()
	sink, ok := n.sinks[user.SocketID]
	n.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: no sink bound for %s", errors.ErrNotConnected, user.UserID)
	}

	sinkCtx, cancel := context.WithTimeout(ctx, n.sinkTimeout)
	defer cancel()

	err := sink.Consume(sinkCtx, domain.Notification{
		RecipientID: user.UserID,
		Type:        kind,
		Payload:     payload,
		At:          time.Now().UTC(),
	})
	if err != nil {
		n.log.Warn("Notification not delivered", "user_id", user.UserID, "type", kind, "error", err)
		return fmt.Errorf("notify %s: %w", user.UserID, err)
	}
	return nil
}
