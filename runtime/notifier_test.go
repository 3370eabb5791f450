package runtime

import (
	"context"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"livechat/domain"
	"livechat/errors"
	"livechat/mocks"
	"log/slog"
	"testing"
	"time"
)

func TestNotifier_Notify(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry := NewRegistry()
	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), registry, time.Second, nil)

	sink := &recordingSink{}
	notifier.Bind("s1", sink)
	registry.Upsert("v1", domain.RoleVisitor, "s1")

	// When notifying a connected user
	req.NoError(notifier.Notify(ctx, "v1", domain.ChatAssignedNotice, domain.ChatAssignedPayload{ChatID: "chat-1"}))

	// Then the sink received it
	received := sink.Received()
	req.Len(received, 1)
	req.Equal("v1", received[0].RecipientID)
	req.Equal(domain.ChatAssignedNotice, received[0].Type)

	// And an offline user is reported as not connected
	registry.MarkDisconnected("s1")
	req.ErrorIs(notifier.Notify(ctx, "v1", domain.ChatAssignedNotice, nil), errors.ErrNotConnected)
	req.ErrorIs(notifier.Notify(ctx, "ghost", domain.ChatAssignedNotice, nil), errors.ErrNotConnected)
}

func TestNotifier_SlowSinkTimesOut(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	registry := NewRegistry()
	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), registry, 20*time.Millisecond, nil)

	slow := mocks.NewMockEventSink(ctrl)
	notifier.Bind("s1", slow)
	registry.Upsert("c1", domain.RoleCommercial, "s1")

	// Given a sink that only returns when its context expires
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.Notification) error {
			<-ctx.Done()
			return ctx.Err()
		})

	start := time.Now()
	err := notifier.Notify(ctx, "c1", domain.ReceiveMessage, nil)

	// Then the push is abandoned after the sink timeout
	req.ErrorIs(err, context.DeadlineExceeded)
	req.Less(time.Since(start), time.Second)
}

func TestNotifier_NotifyRole(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry := NewRegistry()
	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), registry, time.Second, nil)

	sinks := map[string]*recordingSink{}
	for i, user := range []struct {
		id   string
		role domain.Role
	}{{"c1", domain.RoleCommercial}, {"c2", domain.RoleCommercial}, {"v1", domain.RoleVisitor}} {
		sink := &recordingSink{}
		socket := "s" + string(rune('1'+i))
		notifier.Bind(socket, sink)
		registry.Upsert(user.id, user.role, socket)
		sinks[user.id] = sink
	}
	// Given c2 went offline
	registry.MarkDisconnected("s2")

	// When every commercial is told a chat is queued
	req.NoError(notifier.NotifyRole(ctx, domain.RoleCommercial, domain.ChatQueued, domain.ChatQueuedPayload{ChatID: "chat-1", Position: 1}))

	// Then only connected commercials received it
	req.Len(sinks["c1"].Received(), 1)
	req.Empty(sinks["c2"].Received())
	req.Empty(sinks["v1"].Received())
}
