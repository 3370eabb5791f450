package workers

import (
	"context"
	"livechat/contract"
	"livechat/domain"
	"livechat/domain/event"
	"livechat/observability"
	"log/slog"
	"time"
)

// PresenceMonitor expires connections whose heartbeat went silent.
// Expired commercials raise CommercialDisconnectionDetected.
type PresenceMonitor struct {
	log      *slog.Logger
	registry contract.IRegistry
	bus      contract.IEventBus
	metrics  *observability.Metrics
	expire   func(socketID string)
	timeout  time.Duration
	interval time.Duration
	clock    func() time.Time
}

// NewPresenceMonitor builds the monitor. expire is called with the socket
// of every expired connection so the transport can release it; it may be nil.
func NewPresenceMonitor(log *slog.Logger, registry contract.IRegistry, bus contract.IEventBus,
	metrics *observability.Metrics, expire func(socketID string), timeout, interval time.Duration) *PresenceMonitor {
	return &PresenceMonitor{
		log:      log,
		registry: registry,
		bus:      bus,
		metrics:  metrics,
		expire:   expire,
		timeout:  timeout,
		interval: interval,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func (w *PresenceMonitor) Run(ctx context.Context) error {
	w.log.Info("Starting presence monitor", "timeout", w.timeout, "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep expires every connection last seen before now - timeout.
// It returns how many were expired.
func (w *PresenceMonitor) Sweep(ctx context.Context) int {
	deadline := w.clock().Add(-w.timeout)
	expired := 0

	for _, user := range w.registry.Find(domain.Where(domain.FieldConnected, domain.EQUALS, true)) {
		if !user.LastSeenAt.Before(deadline) {
			continue
		}
		gone, ok := w.registry.MarkDisconnected(user.SocketID)
		if !ok {
			continue
		}
		expired++
		for _, role := range gone.Roles {
			w.metrics.Disconnected(string(role))
		}
		if w.expire != nil {
			w.expire(user.SocketID)
		}
		w.log.Info("Heartbeat lost", "user_id", gone.UserID, "last_seen_at", gone.LastSeenAt)

		if gone.IsCommercial() {
			w.bus.Publish(ctx, event.CommercialDisconnectionDetected{UserID: gone.UserID, At: w.clock()})
		}
	}
	return expired
}
