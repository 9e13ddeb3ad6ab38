package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "infra_status"

// Metrics - счетчики и гистограммы сервиса
type Metrics struct {
	ReportsIngested    *prometheus.CounterVec // labels: service_type, status
	HookErrors         *prometheus.CounterVec // labels: hook
	TrendFired         *prometheus.CounterVec // labels: service_type
	TrendCounterErrors prometheus.Counter

	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	FanOutDuration       prometheus.Histogram
	FanOutRecipientCount prometheus.Histogram

	HeatmapCache *prometheus.CounterVec // labels: result={hit,miss,error,stale}
}

// NewMetrics создает метрики и регистрирует их в реестре Prometheus по умолчанию
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.ReportsIngested,
		m.HookErrors,
		m.TrendFired,
		m.TrendCounterErrors,
		m.NotificationsSent,
		m.NotificationsFailed,
		m.FanOutDuration,
		m.FanOutRecipientCount,
		m.HeatmapCache,
	)

	return m
}

// NewMetricsForTesting - метрики без регистрации, чтобы тесты не паниковали
// на "already registered"
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		ReportsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_logs_ingested_total",
			Help:      help("Service availability reports persisted, by service type and status."),
		}, []string{"service_type", "status"}),
		HookErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_write_hook_errors_total",
			Help:      help("Failures inside post-write hooks. The write itself is kept."),
		}, []string{"hook"}),
		TrendFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trend_fired_total",
			Help:      help("Neighborhood restoration trends that triggered a notification."),
		}, []string{"service_type"}),
		TrendCounterErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trend_counter_errors_total",
			Help:      help("Sliding-window counter failures."),
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      help("Notifications delivered to the dispatch channel."),
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      help("Per-recipient delivery failures."),
		}),
		FanOutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_fanout_duration_seconds",
			Help:      help("Duration of a complete neighborhood fan-out."),
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FanOutRecipientCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_fanout_recipients",
			Help:      help("Recipients per fan-out."),
			Buckets:   []float64{0, 1, 10, 50, 100, 500, 1000, 5000},
		}),
		HeatmapCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heatmap_cache_total",
			Help:      help("Heatmap snapshot cache lookups by result."),
		}, []string{"result"}),
	}
}
