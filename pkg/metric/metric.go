// Package metric wraps the Prometheus collectors used to observe menu rendering.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric of this module.
const Namespace = "smartnav"

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounter registers a counter on reg. Name is prefixed with Namespace.
func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(vec)

	return &Counter{
		Name: name,
		Help: help,
		vec:  vec,
	}
}

type Histogram struct {
	Name string
	Help string

	vec *prometheus.HistogramVec
}

// Observe records d in seconds.
func (h *Histogram) Observe(d time.Duration, val ...string) {
	h.vec.WithLabelValues(val...).Observe(d.Seconds())
}

// NewHistogram registers a latency histogram on reg using the default buckets.
func NewHistogram(reg prometheus.Registerer, name, help string, labels ...string) *Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
		Buckets:   prometheus.DefBuckets,
	}, labels)

	reg.MustRegister(vec)

	return &Histogram{
		Name: name,
		Help: help,
		vec:  vec,
	}
}

// HandlerFor returns an HTTP handler serving the metrics gathered by reg.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
