package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"livechat/contract"
	"livechat/domain"
	"livechat/domain/event"
	"livechat/errors"
	"livechat/observability"
	"log/slog"
	"time"
)

// IChatService is what the transport layer calls for a live connection.
type IChatService interface {
	Connect(ctx context.Context, userID string, role domain.Role, socketID string, sink contract.EventSink) domain.ConnectionUser
	Heartbeat(ctx context.Context, userID string, role domain.Role, socketID string, sink contract.EventSink) (domain.ConnectionUser, error)
	Disconnect(ctx context.Context, socketID string, detected bool)
	CreateChat(ctx context.Context, cmd domain.CreateChatCommand) (domain.ChatCreation, error)
	SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error)
	AssignChat(ctx context.Context, cmd domain.AssignChatCommand) (domain.Chat, error)
	GetMessages(ctx context.Context, chatID string, cursor *string) ([]domain.Message, *string, error)
	QueuePosition(ctx context.Context, chatID string) (int, error)
}

type ChatService struct {
	log         *slog.Logger
	registry    contract.IRegistry
	binder      contract.ISinkBinder
	bus         contract.IEventBus
	router      contract.IRouter
	coordinator contract.IQueueCoordinator
	chats       contract.ChatStore
	messages    contract.MessageStore
	metrics     *observability.Metrics
}

func NewChatService(log *slog.Logger, registry contract.IRegistry, binder contract.ISinkBinder,
	bus contract.IEventBus, router contract.IRouter, coordinator contract.IQueueCoordinator,
	chats contract.ChatStore, messages contract.MessageStore, metrics *observability.Metrics) *ChatService {
	return &ChatService{
		log:         log,
		registry:    registry,
		binder:      binder,
		bus:         bus,
		router:      router,
		coordinator: coordinator,
		chats:       chats,
		messages:    messages,
		metrics:     metrics,
	}
}

// Connect binds the sink before registering presence, so the user is never
// visible as connected without a way to reach them.
func (s *ChatService) Connect(ctx context.Context, userID string, role domain.Role, socketID string, sink contract.EventSink) domain.ConnectionUser {
	s.binder.Bind(socketID, sink)
	return s.attach(ctx, userID, role, socketID)
}

// Heartbeat refreshes presence for the socket the user currently holds.
// A connection expired by the presence monitor but still alive had its sink
// unbound, so the sink is bound again first. A socket replaced by a newer
// connection gets ErrSocketSuperseded and is expected to be closed.
func (s *ChatService) Heartbeat(ctx context.Context, userID string, role domain.Role, socketID string, sink contract.EventSink) (domain.ConnectionUser, error) {
	s.binder.Bind(socketID, sink)
	user, attached, err := s.registry.Refresh(userID, socketID)
	if err != nil {
		s.binder.Unbind(socketID)
		s.log.Debug("Heartbeat from a replaced socket", "user_id", userID, "socket", socketID)
		return domain.ConnectionUser{}, err
	}
	if attached {
		s.metrics.Connected(string(role))
		s.log.Info("Presence restored", "user_id", userID, "role", role)
		s.announce(ctx, user)
	}
	return user, nil
}

func (s *ChatService) attach(ctx context.Context, userID string, role domain.Role, socketID string) domain.ConnectionUser {
	previous, wasConnected := s.registry.FindOne(
		domain.Where(domain.FieldUserID, domain.EQUALS, userID),
		domain.Where(domain.FieldConnected, domain.EQUALS, true),
	)
	user, attached := s.registry.Upsert(userID, role, socketID)
	if !attached {
		return user
	}

	if wasConnected && previous.SocketID != socketID {
		s.log.Info("Connection replaced", "user_id", userID, "old_socket", previous.SocketID, "socket", socketID)
	} else {
		s.metrics.Connected(string(role))
		s.log.Info("User connected", "user_id", userID, "role", role)
	}
	s.announce(ctx, user)
	return user
}

func (s *ChatService) announce(ctx context.Context, user domain.ConnectionUser) {
	if user.IsCommercial() {
		s.bus.Publish(ctx, event.CommercialConnected{UserID: user.UserID, At: user.ConnectedAt})
	}
}

// Disconnect releases a socket. detected tells a lost connection from a logout.
// Sockets already replaced by a newer connection are ignored.
func (s *ChatService) Disconnect(ctx context.Context, socketID string, detected bool) {
	s.binder.Unbind(socketID)
	user, ok := s.registry.MarkDisconnected(socketID)
	if !ok {
		return
	}
	for _, role := range user.Roles {
		s.metrics.Disconnected(string(role))
	}
	s.log.Info("User disconnected", "user_id", user.UserID, "detected", detected)

	if !user.IsCommercial() {
		return
	}
	at := time.Now().UTC()
	if user.DisconnectedAt != nil {
		at = *user.DisconnectedAt
	}
	if detected {
		s.bus.Publish(ctx, event.CommercialDisconnectionDetected{UserID: user.UserID, At: at})
		return
	}
	s.bus.Publish(ctx, event.CommercialDisconnected{UserID: user.UserID, At: at})
}

func (s *ChatService) CreateChat(ctx context.Context, cmd domain.CreateChatCommand) (domain.ChatCreation, error) {
	return s.coordinator.CreateChat(ctx, cmd)
}

// SendMessage routes a message. When nobody else is online the message is
// still recorded and the sender sees a plain success.
func (s *ChatService) SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	if err := domain.Validate(cmd); err != nil {
		return domain.Message{}, err
	}
	message, err := s.router.Send(ctx, cmd)
	if stderrors.Is(err, errors.ErrNoReceivers) {
		s.log.Debug("Nobody online, message kept for history", "chat_id", cmd.Chat, "message_id", message.ID)
		return message, s.router.Record(ctx, message)
	}
	return message, err
}

func (s *ChatService) AssignChat(ctx context.Context, cmd domain.AssignChatCommand) (domain.Chat, error) {
	return s.coordinator.Assign(ctx, cmd)
}

func (s *ChatService) GetMessages(ctx context.Context, chatID string, cursor *string) ([]domain.Message, *string, error) {
	messages, next, err := s.messages.GetMessages(ctx, chatID, cursor)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read history of %s: %v", errors.ErrPersistence, chatID, err)
	}
	return messages, next, nil
}

// QueuePosition is 0 once the chat left the queue.
func (s *ChatService) QueuePosition(ctx context.Context, chatID string) (int, error) {
	chat, err := s.chats.FindByID(ctx, chatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrChatNotFound) {
			return 0, errors.ErrChatNotFound
		}
		return 0, fmt.Errorf("%w: find chat %s: %v", errors.ErrPersistence, chatID, err)
	}
	if !chat.IsPending() {
		return 0, nil
	}
	return s.coordinator.Position(ctx, chat), nil
}
