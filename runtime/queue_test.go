package runtime

import (
	"context"
	stderrors "errors"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"livechat/domain"
	"livechat/errors"
	"livechat/infrastructure/storage"
	"livechat/mocks"
	"livechat/observability"
	"log/slog"
	"testing"
	"time"
)

type queueFixture struct {
	coordinator *QueueCoordinator
	chats       *mocks.MockChatStore
	router      *mocks.MockIRouter
	config      *mocks.MockQueueConfigProvider
	commercials *mocks.MockICommercialAssignment
	notifier    *mocks.MockNotificationPort
	bus         *mocks.MockIEventBus
	metrics     *observability.Metrics
}

func newQueueFixture(t *testing.T, maxChats int) *queueFixture {
	ctrl := gomock.NewController(t)
	f := &queueFixture{
		chats:       mocks.NewMockChatStore(ctrl),
		router:      mocks.NewMockIRouter(ctrl),
		config:      mocks.NewMockQueueConfigProvider(ctrl),
		commercials: mocks.NewMockICommercialAssignment(ctrl),
		notifier:    mocks.NewMockNotificationPort(ctrl),
		bus:         mocks.NewMockIEventBus(ctrl),
		metrics:     observability.NewMetrics(prometheus.NewRegistry()),
	}
	f.coordinator = NewQueueCoordinator(logs.GetLoggerFromLevel(slog.LevelDebug), f.chats, f.router,
		f.config, f.commercials, f.notifier, f.bus, f.metrics, maxChats, 10)
	// Notifications and events are side effects checked where they matter
	f.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.notifier.EXPECT().NotifyRole(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return f
}

func createCommand() domain.CreateChatCommand {
	return domain.CreateChatCommand{
		VisitorID: "v1",
		CreatedAt: time.Now().UTC(),
	}
}

func commercial(id string, connectedAt time.Time) domain.ConnectionUser {
	return domain.ConnectionUser{
		UserID:      id,
		Roles:       []domain.Role{domain.RoleCommercial},
		SocketID:    "socket-" + id,
		ConnectedAt: connectedAt,
		LastSeenAt:  connectedAt,
	}
}

func TestQueueCoordinator_CreateChat_ExplicitCommercialSkipsQueue(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)

	cmd := createCommand()
	cmd.CommercialID = lo.ToPtr("c1")

	// Given the chat is stored, and no queue count is ever expected
	f.chats.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	// When the visitor opens a chat with c1
	creation, err := f.coordinator.CreateChat(ctx, cmd)

	// Then it is assigned to c1 outside the queue
	req.NoError(err)
	req.Equal(domain.ASSIGNED, creation.Chat.Status)
	req.Equal("c1", *creation.Chat.AssignedCommercialID)
	req.Zero(creation.Position)
	req.Nil(creation.AutoAssignment)
	req.ElementsMatch([]string{"v1", "c1"}, creation.Chat.ParticipantIDs())
}

func TestQueueCoordinator_CreateChat_Queued(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)
	cmd := createCommand()
	cmd.Department = "sales"

	// Given the queue is enabled and two chats of sales wait already
	f.chats.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	f.config.EXPECT().ShouldUseQueue(ctx, gomock.Any(), domain.NORMAL).Return(true)
	f.chats.EXPECT().CountPendingCreatedBefore(ctx, cmd.CreatedAt, lo.ToPtr("sales")).Return(2, nil)

	// When the chat is opened
	creation, err := f.coordinator.CreateChat(ctx, cmd)

	// Then it waits third
	req.NoError(err)
	req.Equal(domain.PENDING, creation.Chat.Status)
	req.Nil(creation.Chat.AssignedCommercialID)
	req.Equal(3, creation.Position)
}

func TestQueueCoordinator_CreateChat_QueueDisabledAssignsLeastLoaded(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)
	now := time.Now().UTC()

	f.chats.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	f.config.EXPECT().ShouldUseQueue(ctx, gomock.Any(), domain.NORMAL).Return(false)
	f.config.EXPECT().MaxQueueWaitTime(ctx).Return(2 * time.Minute)
	f.commercials.EXPECT().GetConnectedCommercials(ctx).Return([]domain.ConnectionUser{commercial("c1", now)})
	f.chats.EXPECT().CountAssigned(ctx, []string{"c1"}).Return(map[string]int{"c1": 0}, nil)
	f.chats.EXPECT().Update(ctx, gomock.Any(), domain.PENDING).Return(nil)

	creation, err := f.coordinator.CreateChat(ctx, createCommand())

	req.NoError(err)
	req.Equal(domain.ASSIGNED, creation.Chat.Status)
	req.Equal("c1", *creation.Chat.AssignedCommercialID)
	req.Equal(&domain.AutoAssignment{Strategy: domain.WorkloadBalanced, MaxWaitTime: 2 * time.Minute}, creation.AutoAssignment)
	req.Zero(creation.Position)
}

func TestQueueCoordinator_CreateChat_NoCommercialFallsBackToPending(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)

	// Given the queue is disabled but nobody is online
	f.chats.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	f.config.EXPECT().ShouldUseQueue(ctx, gomock.Any(), domain.NORMAL).Return(false)
	f.config.EXPECT().MaxQueueWaitTime(ctx).Return(time.Minute)
	f.commercials.EXPECT().GetConnectedCommercials(ctx).Return(nil)
	f.chats.EXPECT().CountPendingCreatedBefore(ctx, gomock.Any(), nil).Return(0, nil)

	creation, err := f.coordinator.CreateChat(ctx, createCommand())

	// Then the chat waits first in line
	req.NoError(err)
	req.Equal(domain.PENDING, creation.Chat.Status)
	req.Equal(1, creation.Position)
}

func TestQueueCoordinator_CreateChat_FirstMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Recorded as the visitor", func(t *testing.T) {
		f := newQueueFixture(t, 0)
		cmd := createCommand()
		cmd.CommercialID = lo.ToPtr("c1")
		cmd.FirstMessage = lo.ToPtr("Hello, I need help")

		f.chats.EXPECT().Save(ctx, gomock.Any()).Return(nil)
		var recorded domain.Message
		f.router.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m domain.Message) error {
			recorded = m
			return nil
		})

		creation, err := f.coordinator.CreateChat(ctx, cmd)
		require.NoError(t, err)
		require.NotNil(t, creation.FirstMessageID)
		require.Equal(t, *creation.FirstMessageID, recorded.ID)
		require.Equal(t, domain.Visitor("v1"), recorded.Sender)
		require.Equal(t, creation.Chat.ID, recorded.ChatID)
	})

	t.Run("Failure keeps the chat", func(t *testing.T) {
		f := newQueueFixture(t, 0)
		cmd := createCommand()
		cmd.FirstMessage = lo.ToPtr("Hello")

		f.chats.EXPECT().Save(ctx, gomock.Any()).Return(nil)
		f.config.EXPECT().ShouldUseQueue(ctx, gomock.Any(), domain.NORMAL).Return(true)
		f.router.EXPECT().Record(ctx, gomock.Any()).Return(errors.ErrPersistence)

		creation, err := f.coordinator.CreateChat(ctx, cmd)
		require.ErrorIs(t, err, errors.ErrPersistence)
		require.NotEmpty(t, creation.Chat.ID)
		require.Nil(t, creation.FirstMessageID)
	})
}

func TestQueueCoordinator_CreateChat_Invalid(t *testing.T) {
	f := newQueueFixture(t, 0)
	cmd := createCommand()
	cmd.Priority = "CRITICAL"

	_, err := f.coordinator.CreateChat(context.Background(), cmd)
	require.ErrorIs(t, err, errors.ErrInvalidCommand)
}

func TestQueueCoordinator_Position_DegradesToOne(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)
	chat := chatWith()

	// Given the store cannot count
	f.chats.EXPECT().CountPendingCreatedBefore(ctx, chat.CreatedAt, nil).Return(0, stderrors.New("store unavailable"))

	// Then the position is 1 and the fallback is counted
	req.Equal(1, f.coordinator.Position(ctx, chat))
	req.Equal(1.0, testutil.ToFloat64(f.metrics.QueuePositionFallbacks))
}

func TestQueueCoordinator_Position_Monotonic(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	chats := storage.NewChatRepository(db, log)
	coordinator := NewQueueCoordinator(log, chats, nil, nil, nil, nil, nil, nil, 0, 10)

	// Given three pending chats opened at t1 < t2 < t3
	t0 := time.Now().UTC()
	var pending []domain.Chat
	for i := 1; i <= 3; i++ {
		chat, _ := domain.NewPendingChat(lo.RandomString(8, lo.LettersCharset), "v", domain.NORMAL, "", t0.Add(time.Duration(i)*time.Second))
		req.NoError(chats.Save(ctx, chat))
		pending = append(pending, chat)
	}

	// Then positions are 1, 2, 3
	for i, chat := range pending {
		req.Equal(i+1, coordinator.Position(ctx, chat))
	}

	// When the first one is assigned, the others move up
	assigned, _, err := pending[0].Assign("c1", true, t0.Add(time.Minute))
	req.NoError(err)
	req.NoError(chats.Update(ctx, assigned, domain.PENDING))
	req.Equal(1, coordinator.Position(ctx, pending[1]))
	req.Equal(2, coordinator.Position(ctx, pending[2]))
}

func TestQueueCoordinator_TryAutoAssign_WorkloadBalanced(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)
	now := time.Now().UTC()
	chat := chatWith()

	// Given three commercials holding 2, 0 and 1 chats
	f.chats.EXPECT().FindByID(ctx, chat.ID).Return(chat, nil)
	f.commercials.EXPECT().GetConnectedCommercials(ctx).Return([]domain.ConnectionUser{
		commercial("c0", now), commercial("c1", now.Add(time.Second)), commercial("c2", now.Add(2*time.Second)),
	})
	f.chats.EXPECT().CountAssigned(ctx, []string{"c0", "c1", "c2"}).Return(map[string]int{"c0": 2, "c1": 0, "c2": 1}, nil)

	var updated domain.Chat
	f.chats.EXPECT().Update(ctx, gomock.Any(), domain.PENDING).DoAndReturn(
		func(_ context.Context, c domain.Chat, _ domain.ChatStatus) error {
			updated = c
			return nil
		})

	// When the chat is auto-assigned
	assigned, err := f.coordinator.TryAutoAssign(ctx, chat.ID)

	// Then the commercial with 0 chats gets it
	req.NoError(err)
	req.True(assigned)
	req.Equal("c1", *updated.AssignedCommercialID)
	req.Equal(domain.ASSIGNED, updated.Status)
	req.Equal(1.0, testutil.ToFloat64(f.metrics.Assignments.WithLabelValues("auto", observability.StatusSuccess)))
}

func TestQueueCoordinator_TryAutoAssign_TieGoesToOldestSession(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 2)
	now := time.Now().UTC()
	chat := chatWith()

	f.chats.EXPECT().FindByID(ctx, chat.ID).Return(chat, nil)
	f.commercials.EXPECT().GetConnectedCommercials(ctx).Return([]domain.ConnectionUser{
		commercial("full", now.Add(-time.Hour)), commercial("late", now.Add(time.Second)), commercial("early", now),
	})
	f.chats.EXPECT().CountAssigned(ctx, gomock.Any()).Return(map[string]int{"full": 2, "late": 1, "early": 1}, nil)
	f.chats.EXPECT().Update(ctx, gomock.Any(), domain.PENDING).DoAndReturn(
		func(_ context.Context, c domain.Chat, _ domain.ChatStatus) error {
			// Then the commercial at capacity is skipped and the tie broken by session age
			req.Equal("early", *c.AssignedCommercialID)
			return nil
		})

	assigned, err := f.coordinator.TryAutoAssign(ctx, chat.ID)
	req.NoError(err)
	req.True(assigned)
}

func TestQueueCoordinator_TryAutoAssign_NoOp(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Chat already assigned", func(t *testing.T) {
		f := newQueueFixture(t, 0)
		chat, _ := domain.NewAssignedChat("chat-1", "v1", "c1", domain.NORMAL, "", now)
		f.chats.EXPECT().FindByID(ctx, "chat-1").Return(chat, nil)

		assigned, err := f.coordinator.TryAutoAssign(ctx, "chat-1")
		require.NoError(t, err)
		require.False(t, assigned)
	})

	t.Run("Lost the race", func(t *testing.T) {
		f := newQueueFixture(t, 0)
		chat := chatWith()
		f.chats.EXPECT().FindByID(ctx, chat.ID).Return(chat, nil)
		f.commercials.EXPECT().GetConnectedCommercials(ctx).Return([]domain.ConnectionUser{commercial("c1", now)})
		f.chats.EXPECT().CountAssigned(ctx, gomock.Any()).Return(map[string]int{}, nil)
		f.chats.EXPECT().Update(ctx, gomock.Any(), domain.PENDING).Return(errors.ErrAssignmentConflict)

		assigned, err := f.coordinator.TryAutoAssign(ctx, chat.ID)
		require.NoError(t, err)
		require.False(t, assigned)
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Assignments.WithLabelValues("auto", observability.StatusConflict)))
	})

	t.Run("Unknown chat", func(t *testing.T) {
		f := newQueueFixture(t, 0)
		f.chats.EXPECT().FindByID(ctx, "ghost").Return(domain.Chat{}, errors.ErrChatNotFound)

		_, err := f.coordinator.TryAutoAssign(ctx, "ghost")
		require.ErrorIs(t, err, errors.ErrChatNotFound)
	})
}

func TestQueueCoordinator_AssignPending_StopsWhenNobodyCanTakeMore(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 1)
	now := time.Now().UTC()

	first, _ := domain.NewPendingChat("chat-1", "v1", domain.NORMAL, "", now)
	second, _ := domain.NewPendingChat("chat-2", "v2", domain.NORMAL, "", now.Add(time.Second))
	f.chats.EXPECT().FindPending(ctx, nil, 5).Return([]domain.Chat{first, second}, nil)
	f.commercials.EXPECT().GetConnectedCommercials(ctx).Return([]domain.ConnectionUser{commercial("c1", now)}).Times(2)
	gomock.InOrder(
		f.chats.EXPECT().CountAssigned(ctx, []string{"c1"}).Return(map[string]int{"c1": 0}, nil),
		f.chats.EXPECT().CountAssigned(ctx, []string{"c1"}).Return(map[string]int{"c1": 1}, nil),
	)
	f.chats.EXPECT().Update(ctx, gomock.Any(), domain.PENDING).Return(nil).Times(1)

	// When the pending chats are walked with one slot available
	count, err := f.coordinator.AssignPending(ctx, 5)

	// Then only the oldest is assigned
	req.NoError(err)
	req.Equal(1, count)
}

func TestQueueCoordinator_FreeSlots(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	unlimited := newQueueFixture(t, 0)
	slots, err := unlimited.coordinator.FreeSlots(ctx, "c1")
	req.NoError(err)
	req.Equal(10, slots)

	capped := newQueueFixture(t, 3)
	capped.chats.EXPECT().CountAssigned(ctx, []string{"c1"}).Return(map[string]int{"c1": 2}, nil)
	slots, err = capped.coordinator.FreeSlots(ctx, "c1")
	req.NoError(err)
	req.Equal(1, slots)
}

func TestQueueCoordinator_Assign_Explicit(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)
	chat := chatWith()

	f.chats.EXPECT().FindByID(ctx, chat.ID).Return(chat, nil)
	f.chats.EXPECT().Update(ctx, gomock.Any(), domain.PENDING).Return(nil)

	assigned, err := f.coordinator.Assign(ctx, domain.AssignChatCommand{Chat: chat.ID, CommercialID: "c9"})
	req.NoError(err)
	req.Equal("c9", *assigned.AssignedCommercialID)
	req.Equal(1.0, testutil.ToFloat64(f.metrics.Assignments.WithLabelValues("explicit", observability.StatusSuccess)))

	// And a closed chat cannot be picked up
	closed := chat
	closed.Status = domain.CLOSED
	f.chats.EXPECT().FindByID(ctx, chat.ID).Return(closed, nil)
	_, err = f.coordinator.Assign(ctx, domain.AssignChatCommand{Chat: chat.ID, CommercialID: "c9"})
	req.ErrorIs(err, errors.ErrChatClosed)
}

func TestQueueCoordinator_Snapshot(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newQueueFixture(t, 0)
	now := time.Now().UTC()

	// Given two pending chats returned oldest first
	f.chats.EXPECT().FindPending(ctx, lo.ToPtr("sales"), 5).Return([]domain.Chat{
		{ID: "a", Status: domain.PENDING, CreatedAt: now.Add(-time.Minute)},
		{ID: "b", Status: domain.PENDING, CreatedAt: now},
	}, nil)

	entries, err := f.coordinator.Snapshot(ctx, lo.ToPtr("sales"), 5)

	// Then ranks follow the order
	req.NoError(err)
	req.Len(entries, 2)
	req.Equal("a", entries[0].Chat.ID)
	req.Equal(1, entries[0].Position)
	req.Equal(2, entries[1].Position)

	// When the store fails
	f.chats.EXPECT().FindPending(ctx, nil, 5).Return(nil, stderrors.New("disk"))
	_, err = f.coordinator.Snapshot(ctx, nil, 5)
	req.ErrorIs(err, errors.ErrPersistence)
}
