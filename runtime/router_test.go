package runtime

import (
	"context"
	stderrors "errors"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"livechat/domain"
	"livechat/domain/event"
	"livechat/errors"
	"livechat/mocks"
	"livechat/observability"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// recordingSink keeps every notification it receives.
type recordingSink struct {
	mu       sync.Mutex
	received []domain.Notification
	err      error
}

func (s *recordingSink) Consume(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, n)
	return nil
}

func (s *recordingSink) Received() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.received...)
}

type routerFixture struct {
	router   *Router
	registry *Registry
	notifier *Notifier
	chats    *mocks.MockChatStore
	messages *mocks.MockMessageStore
	bus      *mocks.MockIEventBus
	metrics  *observability.Metrics
	sinks    map[string]*recordingSink
}

func newRouterFixture(t *testing.T) *routerFixture {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	notifier := NewNotifier(log, registry, time.Second, metrics)
	f := &routerFixture{
		registry: registry,
		notifier: notifier,
		chats:    mocks.NewMockChatStore(ctrl),
		messages: mocks.NewMockMessageStore(ctrl),
		bus:      mocks.NewMockIEventBus(ctrl),
		metrics:  metrics,
		sinks:    make(map[string]*recordingSink),
	}
	f.router = NewRouter(log, f.chats, f.messages, registry, notifier, f.bus, metrics)
	return f
}

func (f *routerFixture) connect(userID string, role domain.Role) *recordingSink {
	sink := &recordingSink{}
	socketID := "socket-" + userID
	f.notifier.Bind(socketID, sink)
	f.registry.Upsert(userID, role, socketID)
	f.sinks[userID] = sink
	return sink
}

func chatWith(commercialIDs ...string) domain.Chat {
	chat, _ := domain.NewPendingChat("chat-1", "v1", domain.NORMAL, "", time.Now().UTC())
	for _, id := range commercialIDs {
		chat.Participants = append(chat.Participants, domain.Participant{ID: id})
	}
	return chat
}

func send(senderID string) domain.SendMessageCommand {
	return domain.SendMessageCommand{
		MessageID: "m1",
		Chat:      "chat-1",
		SenderID:  senderID,
		Content:   "hello",
		CreatedAt: time.Now().UTC(),
	}
}

func TestRouter_Send_FanoutExcludesSender(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newRouterFixture(t)

	// Given a chat with the visitor and two commercials, all online
	visitor := f.connect("v1", domain.RoleVisitor)
	c1 := f.connect("c1", domain.RoleCommercial)
	c2 := f.connect("c2", domain.RoleCommercial)
	chat := chatWith("c1", "c2", "c1")
	f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chat, nil)

	// Then the message is persisted before MessageSent is published
	gomock.InOrder(
		f.messages.EXPECT().Save(ctx, gomock.Any()).Return(nil),
		f.bus.EXPECT().Publish(ctx, gomock.AssignableToTypeOf(event.MessageSent{})),
	)

	// When the visitor sends
	message, err := f.router.Send(ctx, send("v1"))

	// Then each other participant got it exactly once and the sender nothing
	req.NoError(err)
	req.Equal(domain.Visitor("v1"), message.Sender)
	req.Empty(visitor.Received())
	for _, sink := range []*recordingSink{c1, c2} {
		received := sink.Received()
		req.Len(received, 1)
		req.Equal(domain.ReceiveMessage, received[0].Type)
		payload, ok := received[0].Payload.(domain.ReceiveMessagePayload)
		req.True(ok)
		req.Equal("m1", payload.ID)
		req.Equal("v1", payload.SenderID)
	}
	req.Equal(1.0, testutil.ToFloat64(f.metrics.MessagesRouted.WithLabelValues(observability.OutcomeDelivered)))
}

func TestRouter_Send_NoReceivers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newRouterFixture(t)

	// Given only the sender is online, the commercial c1 is not
	f.connect("v1", domain.RoleVisitor)
	f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chatWith("c1"), nil)

	// When the visitor sends
	message, err := f.router.Send(ctx, send("v1"))

	// Then nothing is pushed nor persisted and the built message is returned
	req.ErrorIs(err, errors.ErrNoReceivers)
	req.Equal("m1", message.ID)
	req.Equal(1.0, testutil.ToFloat64(f.metrics.MessagesRouted.WithLabelValues(observability.OutcomeNoReceivers)))
}

func TestRouter_Send_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown chat", func(t *testing.T) {
		f := newRouterFixture(t)
		f.connect("v1", domain.RoleVisitor)
		f.chats.EXPECT().FindByID(ctx, "chat-1").Return(domain.Chat{}, errors.ErrChatNotFound)

		_, err := f.router.Send(ctx, send("v1"))
		require.ErrorIs(t, err, errors.ErrChatNotFound)
	})

	t.Run("Store failure while reading the chat", func(t *testing.T) {
		f := newRouterFixture(t)
		f.chats.EXPECT().FindByID(ctx, "chat-1").Return(domain.Chat{}, stderrors.New("disk on fire"))

		_, err := f.router.Send(ctx, send("v1"))
		require.ErrorIs(t, err, errors.ErrPersistence)
	})

	t.Run("Sender offline", func(t *testing.T) {
		f := newRouterFixture(t)
		f.connect("c1", domain.RoleCommercial)
		f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chatWith("c1"), nil)

		_, err := f.router.Send(ctx, send("v1"))
		require.ErrorIs(t, err, errors.ErrSenderNotFound)
	})

	t.Run("Sender online but not part of the chat", func(t *testing.T) {
		f := newRouterFixture(t)
		f.connect("v1", domain.RoleVisitor)
		intruder := f.connect("c9", domain.RoleCommercial)
		c1 := f.connect("c1", domain.RoleCommercial)
		f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chatWith("c1"), nil)

		_, err := f.router.Send(ctx, send("c9"))
		require.ErrorIs(t, err, errors.ErrSenderNotFound)
		// Nobody was pushed anything
		require.Empty(t, c1.Received())
		require.Empty(t, intruder.Received())
	})

	t.Run("Persistence failure after the push", func(t *testing.T) {
		f := newRouterFixture(t)
		f.connect("v1", domain.RoleVisitor)
		c1 := f.connect("c1", domain.RoleCommercial)
		f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chatWith("c1"), nil)
		f.messages.EXPECT().Save(ctx, gomock.Any()).Return(stderrors.New("disk full"))

		_, err := f.router.Send(ctx, send("v1"))
		require.ErrorIs(t, err, errors.ErrPersistence)
		// The live push already happened
		require.Len(t, c1.Received(), 1)
	})
}

func TestRouter_Send_FailingReceiverDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newRouterFixture(t)

	f.connect("v1", domain.RoleVisitor)
	broken := f.connect("c1", domain.RoleCommercial)
	broken.err = stderrors.New("socket closed")
	healthy := f.connect("c2", domain.RoleCommercial)
	f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chatWith("c1", "c2"), nil)
	f.messages.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	f.bus.EXPECT().Publish(ctx, gomock.Any())

	_, err := f.router.Send(ctx, send("v1"))

	// Then the send succeeds and the healthy receiver got the message
	req.NoError(err)
	req.Len(healthy.Received(), 1)
	req.Equal(1.0, testutil.ToFloat64(f.metrics.Notifications.WithLabelValues(string(domain.ReceiveMessage), observability.StatusError)))
}
