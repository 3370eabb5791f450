package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects routing, presence and assignment counters.
//
// Every method is safe on a nil receiver so components can run without metrics.
//
// Usage:
//
//	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
//	metrics.MessageRouted(observability.OutcomeDelivered)
type Metrics struct {
	// MessagesRouted counts send attempts by outcome.
	// Labels: outcome (delivered|no_receivers|chat_not_found|sender_not_found|persistence_error)
	MessagesRouted *prometheus.CounterVec

	// Notifications counts pushes to live connections.
	// Labels: type, status (success|error)
	Notifications *prometheus.CounterVec

	// Assignments counts chats bound to a commercial.
	// Labels: mode (explicit|auto), status (success|conflict|error)
	Assignments *prometheus.CounterVec

	// QueuePositionFallbacks counts position computations degraded to 1.
	QueuePositionFallbacks prometheus.Counter

	// Connections tracks live connections per role.
	// Labels: role
	Connections *prometheus.GaugeVec

	// ReactorEvents counts reactor handler runs.
	// Labels: type, status (success|error|dropped)
	ReactorEvents *prometheus.CounterVec

	// ChannelUsage samples buffered channels.
	// Labels: channel, measure (length|capacity)
	ChannelUsage *prometheus.GaugeVec
}

const (
	OutcomeDelivered        = "delivered"
	OutcomeNoReceivers      = "no_receivers"
	OutcomeChatNotFound     = "chat_not_found"
	OutcomeSenderNotFound   = "sender_not_found"
	OutcomePersistenceError = "persistence_error"

	StatusSuccess  = "success"
	StatusError    = "error"
	StatusConflict = "conflict"
	StatusDropped  = "dropped"
)

// NewMetrics registers every collector on reg.
// Tests pass a fresh prometheus.NewRegistry() to stay isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessagesRouted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livechat_messages_routed_total",
				Help: "Total number of send attempts by outcome",
			},
			[]string{"outcome"},
		),
		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livechat_notifications_total",
				Help: "Total number of notifications pushed to live connections",
			},
			[]string{"type", "status"},
		),
		Assignments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livechat_assignments_total",
				Help: "Total number of chat assignment attempts by mode and status",
			},
			[]string{"mode", "status"},
		),
		QueuePositionFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "livechat_queue_position_fallbacks_total",
				Help: "Total number of queue positions degraded to 1 after a count failure",
			},
		),
		Connections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "livechat_connections",
				Help: "Current live connections by role",
			},
			[]string{"role"},
		),
		ReactorEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livechat_reactor_events_total",
				Help: "Total number of assignment recalculation events by type and status",
			},
			[]string{"type", "status"},
		),
		ChannelUsage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "livechat_channel_usage",
				Help: "Sampled length and capacity of internal buffered channels",
			},
			[]string{"channel", "measure"},
		),
	}
}

func (m *Metrics) MessageRouted(outcome string) {
	if m == nil {
		return
	}
	m.MessagesRouted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Notification(kind string, err error) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(kind, status(err)).Inc()
}

func (m *Metrics) Assignment(mode, status string) {
	if m == nil {
		return
	}
	m.Assignments.WithLabelValues(mode, status).Inc()
}

func (m *Metrics) QueuePositionFallback() {
	if m == nil {
		return
	}
	m.QueuePositionFallbacks.Inc()
}

func (m *Metrics) Connected(role string) {
	if m == nil {
		return
	}
	m.Connections.WithLabelValues(role).Inc()
}

func (m *Metrics) Disconnected(role string) {
	if m == nil {
		return
	}
	m.Connections.WithLabelValues(role).Dec()
}

func (m *Metrics) ReactorEvent(kind, status string) {
	if m == nil {
		return
	}
	m.ReactorEvents.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) SampleChannel(channel string, length, capacity int) {
	if m == nil {
		return
	}
	m.ChannelUsage.WithLabelValues(channel, "length").Set(float64(length))
	m.ChannelUsage.WithLabelValues(channel, "capacity").Set(float64(capacity))
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
