package workers

import (
	"context"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"livechat/domain"
	"livechat/domain/event"
	"livechat/mocks"
	"log/slog"
	"testing"
	"time"
)

func TestPresenceMonitor_Sweep(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	bus := mocks.NewMockIEventBus(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	var expired []string
	monitor := NewPresenceMonitor(log, registry, bus, nil, func(socketID string) {
		expired = append(expired, socketID)
	}, 30*time.Second, time.Second)
	monitor.clock = func() time.Time { return now }

	staleCommercial := domain.ConnectionUser{UserID: "c1", Roles: []domain.Role{domain.RoleCommercial}, SocketID: "s1", LastSeenAt: now.Add(-time.Minute)}
	staleVisitor := domain.ConnectionUser{UserID: "v1", Roles: []domain.Role{domain.RoleVisitor}, SocketID: "s2", LastSeenAt: now.Add(-31 * time.Second)}
	fresh := domain.ConnectionUser{UserID: "c2", Roles: []domain.Role{domain.RoleCommercial}, SocketID: "s3", LastSeenAt: now.Add(-10 * time.Second)}

	// Given two silent connections and a fresh one
	registry.EXPECT().Find(gomock.Any()).Return([]domain.ConnectionUser{staleCommercial, staleVisitor, fresh})
	registry.EXPECT().MarkDisconnected("s1").Return(staleCommercial, true)
	registry.EXPECT().MarkDisconnected("s2").Return(staleVisitor, true)

	// Then only the commercial raises a detected disconnection
	bus.EXPECT().Publish(ctx, event.CommercialDisconnectionDetected{UserID: "c1", At: now})

	// When sweeping
	count := monitor.Sweep(ctx)

	req.Equal(2, count)
	req.Equal([]string{"s1", "s2"}, expired)
}

func TestPresenceMonitor_Sweep_RaceWithReconnect(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	bus := mocks.NewMockIEventBus(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	now := time.Now().UTC()
	monitor := NewPresenceMonitor(log, registry, bus, nil, nil, time.Second, time.Second)
	monitor.clock = func() time.Time { return now }

	// Given the user reconnected between the scan and the expiry
	stale := domain.ConnectionUser{UserID: "c1", Roles: []domain.Role{domain.RoleCommercial}, SocketID: "s1", LastSeenAt: now.Add(-time.Hour)}
	registry.EXPECT().Find(gomock.Any()).Return([]domain.ConnectionUser{stale})
	registry.EXPECT().MarkDisconnected("s1").Return(domain.ConnectionUser{}, false)

	// Then nothing is published
	req.Zero(monitor.Sweep(ctx))
}
