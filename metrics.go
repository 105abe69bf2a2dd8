package vlc

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// EventMetrics exposes Prometheus metrics for native events and handles.
// A nil *EventMetrics is valid and records nothing.
type EventMetrics struct {
	events  *prometheus.CounterVec
	handles *prometheus.GaugeVec
}

// NewEventMetrics creates unregistered collectors under namespace
// (default "vlc").
func NewEventMetrics(namespace string) *EventMetrics {
	if namespace == "" {
		namespace = "vlc"
	}
	return &EventMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Total number of native events dispatched to listeners, by category and type.",
		}, []string{"category", "type"}),
		handles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "native_handles",
			Help:      "Current number of live native handles, by kind.",
		}, []string{"kind"}),
	}
}

// Register registers the collectors. Already-registered collectors are not
// an error.
func (m *EventMetrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.events, m.handles} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

func (m *EventMetrics) eventDispatched(category EventCategory, t EventType) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(category.String(), t.String()).Inc()
}

func (m *EventMetrics) handleAcquired(kind string) {
	if m == nil {
		return
	}
	m.handles.WithLabelValues(kind).Inc()
}

func (m *EventMetrics) handleReleased(kind string) {
	if m == nil {
		return
	}
	m.handles.WithLabelValues(kind).Dec()
}
