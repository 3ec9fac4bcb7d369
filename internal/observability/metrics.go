package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups all Prometheus instruments used by the task store.
type Metrics struct {
	TasksCreated  prometheus.Counter
	TasksDeleted  prometheus.Counter
	StatusChanges *prometheus.CounterVec
	StoreSize     prometheus.Gauge
	Syncs         prometheus.Counter
	SyncDuration  prometheus.Histogram
	LastSyncTasks prometheus.Gauge
}

// NewMetrics registers the instruments on reg. A nil reg falls back to the
// default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		TasksCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Tasks created.",
		}),
		TasksDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_deleted_total",
			Help:      "Tasks removed from the store.",
		}),
		StatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_status_changes_total",
			Help:      "Status updates by target status.",
		}, []string{"status"}),
		StoreSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks",
			Help:      "Number of tasks currently held by the store.",
		}),
		Syncs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Completed synchronization runs.",
		}),
		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_ms",
			Help:      "Wall time of a synchronization run in milliseconds.",
			Buckets:   []float64{10, 100, 500, 1000, 1200, 1500, 2000, 5000},
		}),
		LastSyncTasks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sync_tasks",
			Help:      "Task count reported by the most recent synchronization.",
		}),
	}
}

func (m *Metrics) ObserveSync(d time.Duration, count int) {
	m.Syncs.Inc()
	m.SyncDuration.Observe(float64(d.Milliseconds()))
	m.LastSyncTasks.Set(float64(count))
}

func (m *Metrics) ObserveStatusChange(status string) {
	m.StatusChanges.WithLabelValues(status).Inc()
}
