package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's prometheus collectors on a private registry so
// tests can construct isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	// MessagesPosted counts chat messages delivered, labelled by publisher
	MessagesPosted *prometheus.CounterVec

	// PublishFailures counts failed deliveries, labelled by publisher
	PublishFailures *prometheus.CounterVec

	// EventsIngested counts accepted event rows, labelled by source system
	EventsIngested *prometheus.CounterVec

	// EventsRejected counts payloads that failed validation
	EventsRejected prometheus.Counter
}

// New creates and registers the bot's metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		MessagesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tdabot_messages_posted_total",
			Help: "Chat messages successfully posted",
		}, []string{"publisher"}),
		PublishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tdabot_publish_failures_total",
			Help: "Failed message deliveries",
		}, []string{"publisher"}),
		EventsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tdabot_events_ingested_total",
			Help: "Contribution events accepted and persisted",
		}, []string{"source_system"}),
		EventsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tdabot_events_rejected_total",
			Help: "Contribution events rejected by validation",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		m.MessagesPosted,
		m.PublishFailures,
		m.EventsIngested,
		m.EventsRejected,
	)

	return m
}

// Handler exposes the registry for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
