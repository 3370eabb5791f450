package workers

import (
	"context"
	"fmt"
	"livechat/contract"
	"livechat/domain/event"
	"livechat/errors"
	"livechat/observability"
	"log/slog"
)

// AssignmentReactor recomputes assignments when presence or the queue change.
//
// The exclusion set is updated on the publisher's goroutine, in publish order,
// so a full buffer never leaves an online commercial excluded. Only the
// recalculations are buffered: a handler never blocks the publisher and a
// full buffer drops the pass with a warning. Run consumes the buffer one
// event at a time, each reaction isolated so a failure never stops the loop.
type AssignmentReactor struct {
	log         *slog.Logger
	coordinator contract.IQueueCoordinator
	commercials contract.ICommercialAssignment
	metrics     *observability.Metrics
	events      chan event.DomainEvent
}

func NewAssignmentReactor(log *slog.Logger, coordinator contract.IQueueCoordinator,
	commercials contract.ICommercialAssignment, metrics *observability.Metrics, bufferSize int) *AssignmentReactor {
	return &AssignmentReactor{
		log:         log,
		coordinator: coordinator,
		commercials: commercials,
		metrics:     metrics,
		events:      make(chan event.DomainEvent, bufferSize),
	}
}

// Buffer exposes the pending events channel for sampling.
func (r *AssignmentReactor) Buffer() NamedChannel {
	return NamedChannel{Name: "assignment_reactor", Channel: r.events}
}

// Subscribe registers the reactor on every event it reacts to.
func (r *AssignmentReactor) Subscribe(bus contract.IEventBus) {
	for _, t := range []event.Type{
		event.CommercialConnectedType,
		event.CommercialDisconnectedType,
		event.CommercialDisconnectionDetectedType,
		event.PendingChatCreatedType,
	} {
		bus.Subscribe(t, event.HandlerFunc(r.enqueue))
	}
}

func (r *AssignmentReactor) enqueue(_ context.Context, e event.DomainEvent) error {
	if !r.track(e) {
		r.metrics.ReactorEvent(string(e.Type()), observability.StatusSuccess)
		return nil
	}
	select {
	case r.events <- e:
	default:
		r.metrics.ReactorEvent(string(e.Type()), observability.StatusDropped)
		r.log.Warn("Reactor buffer full, event dropped", "event", e.Type())
	}
	return nil
}

// track applies the exclusion set change carried by e and reports whether
// e also needs a recalculation pass.
func (r *AssignmentReactor) track(e event.DomainEvent) bool {
	switch evt := e.(type) {
	case event.CommercialConnected:
		r.commercials.Include(evt.UserID)
	case event.CommercialDisconnected:
		r.commercials.Exclude(evt.UserID)
		r.log.Debug("Commercial logged out, excluded from assignment", "user_id", evt.UserID)
		return false
	case event.CommercialDisconnectionDetected:
		r.commercials.Exclude(evt.UserID)
		r.log.Debug("Commercial lost, excluded from assignment", "user_id", evt.UserID)
		return false
	}
	return true
}

func (r *AssignmentReactor) Run(ctx context.Context) error {
	r.log.Info("Starting assignment reactor")
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Context done, stopping assignment reactor")
			return nil
		case e := <-r.events:
			r.react(ctx, e)
		}
	}
}

func (r *AssignmentReactor) react(ctx context.Context, e event.DomainEvent) {
	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%w: %v", errors.ErrHandlerPanic, rec)
			}
		}()
		return r.recalculate(ctx, e)
	}()
	if err != nil {
		r.metrics.ReactorEvent(string(e.Type()), observability.StatusError)
		r.log.Error("Assignment reaction failed", "event", e.Type(), "error", err)
		return
	}
	r.metrics.ReactorEvent(string(e.Type()), observability.StatusSuccess)
}

// Handle runs the whole reaction for one event synchronously.
func (r *AssignmentReactor) Handle(ctx context.Context, e event.DomainEvent) error {
	if !r.track(e) {
		return nil
	}
	return r.recalculate(ctx, e)
}

func (r *AssignmentReactor) recalculate(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.CommercialConnected:
		return r.onConnected(ctx, evt.UserID)
	case event.PendingChatCreated:
		assigned, err := r.coordinator.TryAutoAssign(ctx, evt.ChatID)
		if err != nil {
			return err
		}
		r.log.Debug("Pending chat examined", "chat_id", evt.ChatID, "assigned", assigned)
	}
	return nil
}

// onConnected hands the commercial as many waiting chats as they have free slots.
func (r *AssignmentReactor) onConnected(ctx context.Context, userID string) error {
	slots, err := r.coordinator.FreeSlots(ctx, userID)
	if err != nil {
		return err
	}
	if slots == 0 {
		return nil
	}
	assigned, err := r.coordinator.AssignPending(ctx, slots)
	if err != nil {
		return err
	}
	r.log.Debug("Pending chats reassigned", "user_id", userID, "assigned", assigned)
	return nil
}
