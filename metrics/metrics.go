// Package metrics provides a Prometheus-backed observer for cache
// events. Counters are labelled by event type only; keys are never used
// as labels to keep cardinality bounded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	gonutcache "github.com/Keksclan/goNutCache"
)

// Collector counts cache events. It implements [gonutcache.Observer]
// and can be passed to gonutcache.WithObserver.
type Collector struct {
	events *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its counters with reg.
// Pass prometheus.DefaultRegisterer to publish on the default registry.
// namespace prefixes the metric names and may be empty.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "nutcache",
		Name:      "events_total",
		Help:      "Cache events by type (hit, miss, dedup, failure, rejected, commit_error).",
	}, []string{"event"})

	if err := reg.Register(events); err != nil {
		return nil, err
	}
	return &Collector{events: events}, nil
}

// On records one cache event.
func (c *Collector) On(ev gonutcache.EventData) {
	c.events.WithLabelValues(ev.Event.String()).Inc()
}
