// Package metrics defines the service's Prometheus collectors.  Each
// Metrics value owns its registry so tests and servers never share series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics is the set of collectors the service maintains.
type Metrics struct {
	Registry     *prometheus.Registry
	Calculations *prometheus.CounterVec // label: category, unit
	Requests     *prometheus.CounterVec // label: method, route, status
}

// New creates the service counters and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bmi_calculations_total",
			Help: "BMI calculations served, by category and input unit.",
		}, []string{"category", "unit"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bmi_http_requests_total",
			Help: "HTTP requests handled, by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
	m.Registry.MustRegister(
		m.Calculations,
		m.Requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
