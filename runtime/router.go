package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"github.com/samber/lo"
	"livechat/contract"
	"livechat/domain"
	"livechat/errors"
	"livechat/observability"
	"log/slog"
	"sync"
)

// Router turns a send intent into live notifications plus a durable record.
type Router struct {
	log      *slog.Logger
	chats    contract.ChatStore
	messages contract.MessageStore
	registry contract.IRegistry
	notifier contract.NotificationPort
	bus      contract.IEventBus
	metrics  *observability.Metrics
}

func NewRouter(log *slog.Logger, chats contract.ChatStore, messages contract.MessageStore,
	registry contract.IRegistry, notifier contract.NotificationPort, bus contract.IEventBus,
	metrics *observability.Metrics) *Router {
	return &Router{
		log:      log,
		chats:    chats,
		messages: messages,
		registry: registry,
		notifier: notifier,
		bus:      bus,
		metrics:  metrics,
	}
}

// Send delivers the message to every other connected participant, then records it.
//
// Failures, in order of detection:
//   - ErrChatNotFound when the chat does not exist
//   - ErrSenderNotFound when the sender holds no live connection or is not
//     a participant of the chat
//   - ErrNoReceivers when nobody else is connected; nothing is pushed nor
//     recorded and the built message is returned so the caller may Record it
//   - ErrPersistence when recording fails after the push
//
// Offline participants are skipped: they will only see the message in history.
func (r *Router) Send(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	chat, err := r.chats.FindByID(ctx, cmd.Chat)
	if err != nil {
		if stderrors.Is(err, errors.ErrChatNotFound) {
			r.metrics.MessageRouted(observability.OutcomeChatNotFound)
			return domain.Message{}, errors.ErrChatNotFound
		}
		r.metrics.MessageRouted(observability.OutcomePersistenceError)
		return domain.Message{}, fmt.Errorf("%w: find chat %s: %v", errors.ErrPersistence, cmd.Chat, err)
	}

	if _, ok := r.registry.FindOne(
		domain.Where(domain.FieldUserID, domain.EQUALS, cmd.SenderID),
		domain.Where(domain.FieldConnected, domain.EQUALS, true),
	); !ok {
		r.metrics.MessageRouted(observability.OutcomeSenderNotFound)
		return domain.Message{}, errors.ErrSenderNotFound
	}

	sender, ok := domain.SenderFor(chat, cmd.SenderID)
	if !ok {
		r.metrics.MessageRouted(observability.OutcomeSenderNotFound)
		return domain.Message{}, fmt.Errorf("%w: %s is not part of chat %s", errors.ErrSenderNotFound, cmd.SenderID, chat.ID)
	}

	message := domain.Message{
		ID:        cmd.MessageID,
		ChatID:    chat.ID,
		Sender:    sender,
		Content:   cmd.Content,
		CreatedAt: cmd.CreatedAt,
	}

	receivers := r.connectedReceivers(chat, cmd.SenderID)
	if len(receivers) == 0 {
		r.metrics.MessageRouted(observability.OutcomeNoReceivers)
		return message, errors.ErrNoReceivers
	}

	r.fanout(ctx, message, receivers)

	if err := r.Record(ctx, message); err != nil {
		r.metrics.MessageRouted(observability.OutcomePersistenceError)
		return message, err
	}
	r.metrics.MessageRouted(observability.OutcomeDelivered)
	return message, nil
}

// Record persists the message and only then publishes MessageSent.
func (r *Router) Record(ctx context.Context, message domain.Message) error {
	if err := r.messages.Save(ctx, message); err != nil {
		return fmt.Errorf("%w: save message %s: %v", errors.ErrPersistence, message.ID, err)
	}
	r.bus.Publish(ctx, message.Sent())
	return nil
}

func (r *Router) connectedReceivers(chat domain.Chat, senderID string) []domain.ConnectionUser {
	ids := lo.Uniq(lo.Without(chat.ParticipantIDs(), senderID))
	if len(ids) == 0 {
		return nil
	}
	return r.registry.Find(
		domain.Where(domain.FieldUserID, domain.IN, ids),
		domain.Where(domain.FieldConnected, domain.EQUALS, true),
	)
}

// fanout pushes to every receiver in parallel and waits for all attempts.
// A failed push is logged and does not affect the others.
func (r *Router) fanout(ctx context.Context, message domain.Message, receivers []domain.ConnectionUser) {
	payload := domain.ReceiveMessagePayload{
		ID:        message.ID,
		ChatID:    message.ChatID,
		SenderID:  message.SenderID(),
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}

	var wg sync.WaitGroup
	for _, receiver := range receivers {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if err := r.notifier.Notify(ctx, userID, domain.ReceiveMessage, payload); err != nil {
				r.log.Warn("Receiver missed live message",
					"chat_id", message.ChatID,
					"message_id", message.ID,
					"user_id", userID,
					"error", err)
			}
		}(receiver.UserID)
	}
	wg.Wait()
}
