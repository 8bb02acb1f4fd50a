package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

const namespace = "troubleshoot"

// Metrics holds the collectors of one process. Each instance owns its registry.
type Metrics struct {
	Registry *prometheus.Registry

	NodeVisits      *prometheus.CounterVec
	Diagnoses       *prometheus.CounterVec
	Exits           *prometheus.CounterVec
	SessionsCreated prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors, plus the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_visits_total",
				Help:      "Total number of question nodes entered.",
			},
			[]string{"category", "node_id"},
		),
		Diagnoses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnoses_total",
				Help:      "Total number of diagnoses reached.",
			},
			[]string{"category", "severity"},
		),
		Exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exits_total",
				Help:      "Total number of sessions that left a category.",
			},
			[]string{"category", "reason"},
		),
		SessionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_created_total",
				Help:      "Total number of sessions created.",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.Registry.MustRegister(
		m.NodeVisits,
		m.Diagnoses,
		m.Exits,
		m.SessionsCreated,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks records navigator events. Back navigation does not count as a visit.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			if e.Back {
				return
			}
			m.NodeVisits.WithLabelValues(e.Category, e.NodeID).Inc()
		},
		OnResult: func(ctx context.Context, e *domain.ResultEvent) {
			m.Diagnoses.WithLabelValues(e.Category, string(e.Severity)).Inc()
		},
		OnExit: func(ctx context.Context, e *domain.ExitEvent) {
			m.Exits.WithLabelValues(e.Category, e.Reason).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
