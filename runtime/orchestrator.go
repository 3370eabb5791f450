// Package runtime handles presence, routing, queueing and assignment.
// It orchestrates the live side of the chat without owning persistence or transport.
package runtime

import (
	"context"
	"livechat/contract"
	"livechat/observability"
	"livechat/runtime/workers"
	"log/slog"
	"time"
)

type OrchestratorConfig struct {
	SinkTimeout           time.Duration
	HeartbeatTimeout      time.Duration
	PresenceSweepInterval time.Duration
	RestartInterval       time.Duration
	MaxChatsPerCommercial int
	AssignBatchSize       int
	ReactorBufferSize     int
	MetricInterval        time.Duration
}

// Orchestrator builds the runtime components once and runs the long-lived
// ones (reactor, presence monitor) under a supervisor.
type Orchestrator struct {
	log         *slog.Logger
	supervisor  contract.ISupervisor
	Registry    *Registry
	Notifier    *Notifier
	Bus         *EventBus
	Router      *Router
	Assignment  *AssignmentService
	Coordinator *QueueCoordinator
	reactor     *workers.AssignmentReactor
	presence    *workers.PresenceMonitor
	capacity    *workers.ChannelCapacityWorker
}

func NewOrchestrator(log *slog.Logger, cfg OrchestratorConfig, chats contract.ChatStore,
	messages contract.MessageStore, queueConfig contract.QueueConfigProvider, metrics *observability.Metrics) *Orchestrator {
	registry := NewRegistry()
	bus := NewEventBus(log)
	notifier := NewNotifier(log, registry, cfg.SinkTimeout, metrics)
	router := NewRouter(log, chats, messages, registry, notifier, bus, metrics)
	assignment := NewAssignmentService(registry)
	coordinator := NewQueueCoordinator(log, chats, router, queueConfig, assignment, notifier, bus, metrics,
		cfg.MaxChatsPerCommercial, cfg.AssignBatchSize)

	reactor := workers.NewAssignmentReactor(log, coordinator, assignment, metrics, cfg.ReactorBufferSize)
	reactor.Subscribe(bus)

	return &Orchestrator{
		log:         log,
		supervisor:  workers.NewSupervisor(log, cfg.RestartInterval),
		Registry:    registry,
		Notifier:    notifier,
		Bus:         bus,
		Router:      router,
		Assignment:  assignment,
		Coordinator: coordinator,
		reactor:     reactor,
		presence: workers.NewPresenceMonitor(log, registry, bus, metrics, notifier.Unbind,
			cfg.HeartbeatTimeout, cfg.PresenceSweepInterval),
		capacity: workers.NewChannelCapacityWorker(log, []workers.NamedChannel{reactor.Buffer()},
			metrics, cfg.MetricInterval),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.supervisor.Add(o.reactor, o.presence, o.capacity)
	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
}

func (o *Orchestrator) Stop() {
	o.supervisor.Stop()
}
