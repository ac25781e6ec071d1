package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the clientes lifecycle.
// Tracks lifecycle transitions, policy rejections and store latency.
type Metrics struct {
	Created      prometheus.Counter
	Updated      prometheus.Counter
	Deleted      prometheus.Counter
	Reactivated  prometheus.Counter
	Rejected     *prometheus.CounterVec
	StoreLatency *prometheus.HistogramVec
}

// New registers all clientes metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Created: f.NewCounter(prometheus.CounterOpts{
			Name: "clientes_created_total",
			Help: "Total number of clientes created",
		}),
		Updated: f.NewCounter(prometheus.CounterOpts{
			Name: "clientes_updated_total",
			Help: "Total number of clientes updated",
		}),
		Deleted: f.NewCounter(prometheus.CounterOpts{
			Name: "clientes_deleted_total",
			Help: "Total number of soft deletes",
		}),
		Reactivated: f.NewCounter(prometheus.CounterOpts{
			Name: "clientes_reactivated_total",
			Help: "Total number of reactivations",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_rejected_total",
			Help: "Operations rejected by the lifecycle policy, by reason",
		}, []string{"op", "reason"}),
		StoreLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clientes_store_duration_seconds",
			Help:    "Duration of store round trips by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"op"}),
	}
}

// IncCreated records a successful create. Nil-safe, like every method here.
func (m *Metrics) IncCreated() {
	if m != nil {
		m.Created.Inc()
	}
}

func (m *Metrics) IncUpdated() {
	if m != nil {
		m.Updated.Inc()
	}
}

func (m *Metrics) IncDeleted() {
	if m != nil {
		m.Deleted.Inc()
	}
}

func (m *Metrics) IncReactivated() {
	if m != nil {
		m.Reactivated.Inc()
	}
}

// Reject records a policy rejection such as duplicate_key or not_found.
func (m *Metrics) Reject(op, reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(op, reason).Inc()
	}
}

// ObserveStore records the duration of a store call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveStore(op string, start time.Time) {
	if m != nil {
		m.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
