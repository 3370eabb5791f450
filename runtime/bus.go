package runtime

import (
	"context"
	"fmt"
	"livechat/domain/event"
	"livechat/errors"
	"log/slog"
	"sync"
)

// EventBus delivers persisted domain events to in-process subscribers.
//
// Handlers run one after the other in subscription order. A handler that
// fails or panics is logged and never prevents its siblings from running.
// EventBus is not a message broker: no retry, no replay, no durability.
type EventBus struct {
	mu       sync.RWMutex
	log      *slog.Logger
	handlers map[event.Type][]event.Handler
}

func NewEventBus(log *slog.Logger) *EventBus {
	return &EventBus{
		log:      log,
		handlers: make(map[event.Type][]event.Handler),
	}
}

func (b *EventBus) Subscribe(t event.Type, handler event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], handler)
}

// Publish must only be called once the state behind the events is persisted.
func (b *EventBus) Publish(ctx context.Context, events ...event.DomainEvent) {
	for _, e := range events {
		b.mu.RLock()
		handlers := append([]event.Handler(nil), b.handlers[e.Type()]...)
		b.mu.RUnlock()

		for _, h := range handlers {
			if err := safeHandle(ctx, h, e); err != nil {
				b.log.Error("Event handler failed", "event", e.Type(), "error", err)
			}
		}
	}
}

// safeHandle turns a panicking handler into an error.
func safeHandle(ctx context.Context, h event.Handler, e event.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrHandlerPanic, r)
		}
	}()
	return h.Handle(ctx, e)
}
