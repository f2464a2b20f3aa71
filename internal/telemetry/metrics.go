package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"gatewayd/internal/lora"
)

// AdapterMetrics mirrors adapter totals into Prometheus gauges and counts
// operations by outcome.
type AdapterMetrics struct {
	loaded    prometheus.Gauge
	active    prometheus.Gauge
	exclusive prometheus.Gauge
	ops       *prometheus.CounterVec
}

// NewAdapterMetrics creates the collectors and registers them with reg.
func NewAdapterMetrics(reg prometheus.Registerer) *AdapterMetrics {
	m := &AdapterMetrics{
		loaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gatewayd",
			Subsystem: "lora",
			Name:      "adapters_loaded",
			Help:      "Number of LoRA adapters currently loaded",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gatewayd",
			Subsystem: "lora",
			Name:      "adapters_active",
			Help:      "Number of LoRA adapters currently active",
		}),
		exclusive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gatewayd",
			Subsystem: "lora",
			Name:      "exclusive_mode",
			Help:      "1 when exclusive activation mode is enabled",
		}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatewayd",
			Subsystem: "lora",
			Name:      "events_total",
			Help:      "Adapter lifecycle events by name",
		}, []string{"event"}),
	}
	if reg != nil {
		reg.MustRegister(m.loaded, m.active, m.exclusive, m.ops)
	}
	return m
}

func (m *AdapterMetrics) Publish(e lora.Event) {
	m.ops.WithLabelValues(e.Name).Inc()
	m.set(e.Fields)
}

// Observe seeds the gauges from a snapshot, before any event has fired.
func (m *AdapterMetrics) Observe(loaded, active int, exclusive bool) {
	m.set(map[string]any{"loaded": loaded, "active": active, "exclusive": exclusive})
}

func (m *AdapterMetrics) set(fields map[string]any) {
	if n, ok := fields["loaded"].(int); ok {
		m.loaded.Set(float64(n))
	}
	if n, ok := fields["active"].(int); ok {
		m.active.Set(float64(n))
	}
	if on, ok := fields["exclusive"].(bool); ok {
		if on {
			m.exclusive.Set(1)
		} else {
			m.exclusive.Set(0)
		}
	}
}
