package internal

import (
	"context"
	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"livechat/auth"
	"livechat/infrastructure/storage"
	"livechat/infrastructure/ws"
	"livechat/observability"
	"livechat/runtime"
	"livechat/services"
	"log/slog"
	"net/http"
)

const WebsocketPath = "/ws"

// App is the assembled server: stores on one badger DB, the runtime and the
// HTTP surface (websocket, metrics, health and optional debug routes).
type App struct {
	log          *slog.Logger
	Orchestrator *runtime.Orchestrator
	Service      *services.ChatService
	Tokens       *auth.TokenIssuer
	QueueConfig  *storage.QueueConfigRepository
	Transport    *ws.Server
	Handler      http.Handler
}

func NewApp(log *slog.Logger, config Config, db *badger.DB, reg prometheus.Registerer, gatherer prometheus.Gatherer) *App {
	metrics := observability.NewMetrics(reg)
	chats := storage.NewChatRepository(db, log)
	messages := storage.NewMessageRepository(db, log, config.LimitMessages)
	queueConfig := storage.NewQueueConfigRepository(db, log, storage.QueueSettings{
		UseQueue:          config.UseQueue,
		MaxQueueWaitTime:  config.MaxQueueWaitTime,
		UrgentBypassQueue: config.UrgentBypassQueue,
	})

	orchestrator := runtime.NewOrchestrator(log, runtime.OrchestratorConfig{
		SinkTimeout:           config.SinkTimeout,
		HeartbeatTimeout:      config.HeartbeatTimeout,
		PresenceSweepInterval: config.PresenceSweepInterval,
		RestartInterval:       config.RestartInterval,
		MaxChatsPerCommercial: config.MaxChatsPerCommercial,
		AssignBatchSize:       config.AssignBatchSize,
		ReactorBufferSize:     config.ReactorBufferSize,
		MetricInterval:        config.MetricInterval,
	}, chats, messages, queueConfig, metrics)

	service := services.NewChatService(log, orchestrator.Registry, orchestrator.Notifier, orchestrator.Bus,
		orchestrator.Router, orchestrator.Coordinator, chats, messages, metrics)
	tokens := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)

	mux := http.NewServeMux()
	transport := ws.NewServer(log, service, tokens, config.ConnectionBufferSize, config.HeartbeatTimeout)
	mux.Handle(WebsocketPath, transport)
	mux.Handle("GET "+config.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if config.DebugEndpoints {
		NewDebugHandler(db, orchestrator.Coordinator, queueConfig, orchestrator.Registry).Register(mux)
	}

	return &App{
		log:          log,
		Orchestrator: orchestrator,
		Service:      service,
		Tokens:       tokens,
		QueueConfig:  queueConfig,
		Transport:    transport,
		Handler:      mux,
	}
}

// Run blocks on the supervised workers until ctx is done.
func (a *App) Run(ctx context.Context) {
	a.Orchestrator.Start(ctx)
}

func (a *App) Stop() {
	a.Orchestrator.Stop()
}
