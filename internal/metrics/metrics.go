// Package metrics holds the Prometheus collectors of a shell session.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
)

const namespace = "gridcalc"

// Collector holds all Prometheus metrics for the application. Each
// collector owns its registry, so independent sessions and tests never
// clash on registration.
type Collector struct {
	registry *prometheus.Registry

	Commands         *prometheus.CounterVec
	Mutations        prometheus.Counter
	Undos            prometheus.Counter
	EvaluationErrors *prometheus.CounterVec
	Cells            prometheus.Gauge
}

// NewCollector creates and registers the session metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Shell commands processed, by command and outcome.",
			},
			[]string{"command", "status"},
		),
		Mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Committed sheet mutations.",
		}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_total",
			Help:      "Successful undo operations.",
		}),
		EvaluationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluation_errors_total",
				Help:      "Calculation failures reported to the user, by kind.",
			},
			[]string{"kind"},
		),
		Cells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells",
			Help:      "Occupied cells in the sheet.",
		}),
	}
	c.registry.MustRegister(c.Commands, c.Mutations, c.Undos, c.EvaluationErrors, c.Cells)
	return c
}

// ObserveCommand counts one shell command.
func (c *Collector) ObserveCommand(name string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Commands.WithLabelValues(name, status).Inc()
}

// ObserveError counts a calculation failure. Other errors are ignored.
func (c *Collector) ObserveError(err error) {
	if kind := calcerr.KindOf(err); kind != 0 {
		c.EvaluationErrors.WithLabelValues(kind.String()).Inc()
	}
}

// Registry returns the registry the collectors are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
