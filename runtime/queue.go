package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"livechat/contract"
	"livechat/domain"
	"livechat/domain/event"
	"livechat/errors"
	"livechat/observability"
	"log/slog"
	"time"
)

const (
	modeAuto     = "auto"
	modeExplicit = "explicit"
)

// QueueCoordinator decides, when a chat is opened, whether it waits in the
// fair queue or is bound to a commercial right away, and runs the
// workload-balanced auto-assignment used by the reactor.
type QueueCoordinator struct {
	log         *slog.Logger
	chats       contract.ChatStore
	router      contract.IRouter
	config      contract.QueueConfigProvider
	commercials contract.ICommercialAssignment
	notifier    contract.NotificationPort
	bus         contract.IEventBus
	metrics     *observability.Metrics
	maxChats    int // per commercial, 0 means unlimited
	batchSize   int // pending chats examined per pass when maxChats is 0
}

func NewQueueCoordinator(log *slog.Logger, chats contract.ChatStore, router contract.IRouter,
	config contract.QueueConfigProvider, commercials contract.ICommercialAssignment,
	notifier contract.NotificationPort, bus contract.IEventBus, metrics *observability.Metrics,
	maxChats, batchSize int) *QueueCoordinator {
	return &QueueCoordinator{
		log:         log,
		chats:       chats,
		router:      router,
		config:      config,
		commercials: commercials,
		notifier:    notifier,
		bus:         bus,
		metrics:     metrics,
		maxChats:    maxChats,
		batchSize:   batchSize,
	}
}

// CreateChat opens a chat. Persisting the chat, recording the first message
// and computing the queue position are sequential steps. A first message
// that fails to persist is reported but the chat stays created.
//
//	explicit commercial       -> ASSIGNED, no queue position
//	queue disabled            -> workload-balanced auto-assignment
//	queue enabled             -> PENDING with a queue position
//
// When no commercial can take the chat it stays PENDING whatever the mode.
func (c *QueueCoordinator) CreateChat(ctx context.Context, cmd domain.CreateChatCommand) (domain.ChatCreation, error) {
	if err := domain.Validate(cmd); err != nil {
		return domain.ChatCreation{}, err
	}
	priority := lo.Ternary(cmd.Priority == "", domain.NORMAL, cmd.Priority)
	chatID := uuid.NewString()

	if cmd.CommercialID != nil {
		chat, events := domain.NewAssignedChat(chatID, cmd.VisitorID, *cmd.CommercialID, priority, cmd.Department, cmd.CreatedAt)
		if err := c.chats.Save(ctx, chat); err != nil {
			c.metrics.Assignment(modeExplicit, observability.StatusError)
			return domain.ChatCreation{}, fmt.Errorf("%w: save chat: %v", errors.ErrPersistence, err)
		}
		c.metrics.Assignment(modeExplicit, observability.StatusSuccess)
		c.bus.Publish(ctx, events...)
		c.announceAssignment(ctx, chat)
		return c.recordFirstMessage(ctx, domain.ChatCreation{Chat: chat}, cmd)
	}

	chat, events := domain.NewPendingChat(chatID, cmd.VisitorID, priority, cmd.Department, cmd.CreatedAt)
	if err := c.chats.Save(ctx, chat); err != nil {
		return domain.ChatCreation{}, fmt.Errorf("%w: save chat: %v", errors.ErrPersistence, err)
	}
	creation := domain.ChatCreation{Chat: chat}

	if !c.config.ShouldUseQueue(ctx, chatID, priority) {
		creation.AutoAssignment = &domain.AutoAssignment{
			Strategy:    domain.WorkloadBalanced,
			MaxWaitTime: c.config.MaxQueueWaitTime(ctx),
		}
		assigned, assignEvents, err := c.autoAssign(ctx, chat)
		switch {
		case err == nil:
			creation.Chat = assigned
			c.bus.Publish(ctx, append(withoutPending(events), assignEvents...)...)
			c.announceAssignment(ctx, assigned)
			return c.recordFirstMessage(ctx, creation, cmd)
		case stderrors.Is(err, errors.ErrNoCommercial):
			c.log.Debug("No commercial available, chat stays pending", "chat_id", chatID)
		default:
			c.log.Warn("Auto-assignment failed, chat stays pending", "chat_id", chatID, "error", err)
		}
	}

	c.bus.Publish(ctx, events...)
	creation, err := c.recordFirstMessage(ctx, creation, cmd)
	if err != nil {
		return creation, err
	}
	creation.Position = c.Position(ctx, chat)
	c.announceQueued(ctx, chat, creation.Position)
	return creation, nil
}

// Position is the 1-based rank of a pending chat among the pending chats
// created strictly before it, within its department when it has one.
// It is recomputed on every call. A failing count degrades to 1.
func (c *QueueCoordinator) Position(ctx context.Context, chat domain.Chat) int {
	var department *string
	if chat.Metadata.Department != "" {
		department = lo.ToPtr(chat.Metadata.Department)
	}
	count, err := c.chats.CountPendingCreatedBefore(ctx, chat.CreatedAt, department)
	if err != nil {
		c.metrics.QueuePositionFallback()
		c.log.Warn("Queue position unavailable, falling back to 1", "chat_id", chat.ID, "error", err)
		return 1
	}
	return count + 1
}

// TryAutoAssign binds a pending chat to the least loaded commercial.
// It returns false without error when the chat is no longer pending,
// nobody can take it, or another assignment won the race.
func (c *QueueCoordinator) TryAutoAssign(ctx context.Context, chatID string) (bool, error) {
	chat, err := c.chats.FindByID(ctx, chatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrChatNotFound) {
			return false, errors.ErrChatNotFound
		}
		return false, fmt.Errorf("%w: find chat %s: %v", errors.ErrPersistence, chatID, err)
	}
	if !chat.IsPending() {
		return false, nil
	}

	assigned, events, err := c.autoAssign(ctx, chat)
	switch {
	case stderrors.Is(err, errors.ErrNoCommercial), stderrors.Is(err, errors.ErrAssignmentConflict):
		return false, nil
	case err != nil:
		return false, err
	}
	c.bus.Publish(ctx, events...)
	c.announceAssignment(ctx, assigned)
	return true, nil
}

// AssignPending walks up to limit pending chats, oldest first, and auto-assigns
// them until no commercial can take more. It returns how many were assigned.
func (c *QueueCoordinator) AssignPending(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}
	pending, err := c.chats.FindPending(ctx, nil, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: find pending: %v", errors.ErrPersistence, err)
	}

	assignedCount := 0
	for _, chat := range pending {
		assigned, events, err := c.autoAssign(ctx, chat)
		switch {
		case stderrors.Is(err, errors.ErrNoCommercial):
			return assignedCount, nil
		case stderrors.Is(err, errors.ErrAssignmentConflict):
			continue
		case err != nil:
			c.log.Warn("Pending chat not assigned", "chat_id", chat.ID, "error", err)
			continue
		}
		assignedCount++
		c.bus.Publish(ctx, events...)
		c.announceAssignment(ctx, assigned)
	}
	return assignedCount, nil
}

// FreeSlots is how many more chats commercialID can take.
func (c *QueueCoordinator) FreeSlots(ctx context.Context, commercialID string) (int, error) {
	if c.maxChats == 0 {
		return c.batchSize, nil
	}
	loads, err := c.chats.CountAssigned(ctx, []string{commercialID})
	if err != nil {
		return 0, fmt.Errorf("%w: count assigned: %v", errors.ErrPersistence, err)
	}
	return max(0, c.maxChats-loads[commercialID]), nil
}

// Snapshot lists up to limit pending chats oldest first with their rank.
// Ranks are per department when one is given, global otherwise.
func (c *QueueCoordinator) Snapshot(ctx context.Context, department *string, limit int) ([]domain.QueueEntry, error) {
	pending, err := c.chats.FindPending(ctx, department, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: find pending: %v", errors.ErrPersistence, err)
	}
	return lo.Map(pending, func(chat domain.Chat, i int) domain.QueueEntry {
		return domain.QueueEntry{Chat: chat, Position: i + 1}
	}), nil
}

// Assign is the manual pick-up of a pending chat by a commercial.
// Losing the race against another assignment returns ErrAssignmentConflict.
func (c *QueueCoordinator) Assign(ctx context.Context, cmd domain.AssignChatCommand) (domain.Chat, error) {
	if err := domain.Validate(cmd); err != nil {
		return domain.Chat{}, err
	}
	chat, err := c.chats.FindByID(ctx, cmd.Chat)
	if err != nil {
		if stderrors.Is(err, errors.ErrChatNotFound) {
			return domain.Chat{}, errors.ErrChatNotFound
		}
		return domain.Chat{}, fmt.Errorf("%w: find chat %s: %v", errors.ErrPersistence, cmd.Chat, err)
	}
	assigned, events, err := c.assign(ctx, chat, cmd.CommercialID, false)
	if err != nil {
		return chat, err
	}
	c.bus.Publish(ctx, events...)
	c.announceAssignment(ctx, assigned)
	return assigned, nil
}

// autoAssign applies the workload-balanced strategy without publishing.
func (c *QueueCoordinator) autoAssign(ctx context.Context, chat domain.Chat) (domain.Chat, []event.DomainEvent, error) {
	commercial, err := c.pickCommercial(ctx)
	if err != nil {
		return chat, nil, err
	}
	return c.assign(ctx, chat, commercial.UserID, true)
}

// pickCommercial returns the connected commercial with the fewest assigned
// chats, ties going to the oldest session. Commercials at capacity are skipped.
func (c *QueueCoordinator) pickCommercial(ctx context.Context) (domain.ConnectionUser, error) {
	commercials := c.commercials.GetConnectedCommercials(ctx)
	if len(commercials) == 0 {
		return domain.ConnectionUser{}, errors.ErrNoCommercial
	}

	ids := lo.Map(commercials, func(u domain.ConnectionUser, _ int) string { return u.UserID })
	loads, err := c.chats.CountAssigned(ctx, ids)
	if err != nil {
		return domain.ConnectionUser{}, fmt.Errorf("%w: count assigned: %v", errors.ErrPersistence, err)
	}

	candidates := lo.Filter(commercials, func(u domain.ConnectionUser, _ int) bool {
		return c.maxChats == 0 || loads[u.UserID] < c.maxChats
	})
	if len(candidates) == 0 {
		return domain.ConnectionUser{}, errors.ErrNoCommercial
	}

	return lo.MinBy(candidates, func(a, b domain.ConnectionUser) bool {
		if loads[a.UserID] != loads[b.UserID] {
			return loads[a.UserID] < loads[b.UserID]
		}
		return a.ConnectedAt.Before(b.ConnectedAt)
	}), nil
}

// assign persists PENDING -> ASSIGNED through the store compare-and-set.
// The first successful write wins; the loser gets ErrAssignmentConflict.
func (c *QueueCoordinator) assign(ctx context.Context, chat domain.Chat, commercialID string, automatic bool) (domain.Chat, []event.DomainEvent, error) {
	mode := lo.Ternary(automatic, modeAuto, modeExplicit)

	next, events, err := chat.Assign(commercialID, automatic, time.Now().UTC())
	if err != nil {
		c.metrics.Assignment(mode, observability.StatusConflict)
		return chat, nil, err
	}
	if err := c.chats.Update(ctx, next, domain.PENDING); err != nil {
		if stderrors.Is(err, errors.ErrAssignmentConflict) {
			c.metrics.Assignment(mode, observability.StatusConflict)
			return chat, nil, errors.ErrAssignmentConflict
		}
		c.metrics.Assignment(mode, observability.StatusError)
		return chat, nil, fmt.Errorf("%w: update chat %s: %v", errors.ErrPersistence, chat.ID, err)
	}
	c.metrics.Assignment(mode, observability.StatusSuccess)
	c.log.Info("Chat assigned", "chat_id", chat.ID, "commercial_id", commercialID, "mode", mode)
	return next, events, nil
}

func (c *QueueCoordinator) recordFirstMessage(ctx context.Context, creation domain.ChatCreation, cmd domain.CreateChatCommand) (domain.ChatCreation, error) {
	if cmd.FirstMessage == nil {
		return creation, nil
	}
	message := domain.Message{
		ID:        uuid.NewString(),
		ChatID:    creation.Chat.ID,
		Sender:    domain.Visitor(cmd.VisitorID),
		Content:   *cmd.FirstMessage,
		CreatedAt: cmd.CreatedAt,
	}
	if err := c.router.Record(ctx, message); err != nil {
		c.log.Error("First message lost, chat kept", "chat_id", creation.Chat.ID, "error", err)
		return creation, err
	}
	creation.FirstMessageID = lo.ToPtr(message.ID)
	return creation, nil
}

func (c *QueueCoordinator) announceAssignment(ctx context.Context, chat domain.Chat) {
	if chat.AssignedCommercialID == nil {
		return
	}
	payload := domain.ChatAssignedPayload{
		ChatID:       chat.ID,
		VisitorID:    chat.VisitorID,
		CommercialID: *chat.AssignedCommercialID,
	}
	for _, recipient := range []string{*chat.AssignedCommercialID, chat.VisitorID} {
		if err := c.notifier.Notify(ctx, recipient, domain.ChatAssignedNotice, payload); err != nil {
			c.log.Debug("Assignment notice not delivered", "chat_id", chat.ID, "user_id", recipient, "error", err)
		}
	}
}

func (c *QueueCoordinator) announceQueued(ctx context.Context, chat domain.Chat, position int) {
	err := c.notifier.NotifyRole(ctx, domain.RoleCommercial, domain.ChatQueued, domain.ChatQueuedPayload{
		ChatID:     chat.ID,
		VisitorID:  chat.VisitorID,
		Priority:   chat.Priority,
		Department: chat.Metadata.Department,
		Position:   position,
		CreatedAt:  chat.CreatedAt,
	})
	if err != nil {
		c.log.Debug("Queued notice partially delivered", "chat_id", chat.ID, "error", err)
	}
}

func withoutPending(events []event.DomainEvent) []event.DomainEvent {
	return lo.Reject(events, func(e event.DomainEvent, _ int) bool {
		return e.Type() == event.PendingChatCreatedType
	})
}
