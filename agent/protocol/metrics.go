package protocol

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

// metrics uses a registry per server so several servers can live in one
// process.
type metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "support_tool_calls_total",
			Help: "Tool calls handled by the protocol server, by outcome.",
		}, []string{"tool", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "support_tool_call_duration_seconds",
			Help:    "Time spent executing a tool call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
	}
}

func (m *metrics) observe(name contractx.ToolName, failed bool, elapsed time.Duration) {
	outcome := "success"
	if failed {
		outcome = "failure"
	}
	m.calls.WithLabelValues(string(name), outcome).Inc()
	m.duration.WithLabelValues(string(name)).Observe(elapsed.Seconds())
}
