package main

import (
	"context"
	"net/http"
	"time"

	"github.com/akmonengine/partition"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics are registered on a registry of their own so that runs do not share counters.
type metrics struct {
	registry *prometheus.Registry

	steps       prometheus.Counter
	checks      prometheus.Counter
	contacts    prometheus.Counter
	bodies      prometheus.Gauge
	octreeNodes prometheus.Gauge
	stepChecks  prometheus.Histogram
}

func newMetrics(mode string) *metrics {
	labels := prometheus.Labels{"mode": mode}
	m := &metrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "octreedemo_steps_total",
			Help:        "The number of simulated steps.",
			ConstLabels: labels,
		}),
		checks: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "octreedemo_checks_total",
			Help:        "The number of pair intersection checks.",
			ConstLabels: labels,
		}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "octreedemo_contacts_total",
			Help:        "The number of intersecting pairs found.",
			ConstLabels: labels,
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "octreedemo_bodies",
			Help:        "The number of bodies in the world.",
			ConstLabels: labels,
		}),
		octreeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "octreedemo_octree_nodes",
			Help:        "The number of live octree nodes.",
			ConstLabels: labels,
		}),
		stepChecks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "octreedemo_step_checks",
			Help:        "The number of pair checks per step.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	m.registry.MustRegister(m.steps, m.checks, m.contacts, m.bodies, m.octreeNodes, m.stepChecks)
	return m
}

func (m *metrics) observe(stats partition.StepStats, bodies int) {
	m.steps.Inc()
	m.checks.Add(float64(stats.Checks))
	m.contacts.Add(float64(stats.Contacts))
	m.bodies.Set(float64(bodies))
	m.octreeNodes.Set(float64(stats.Nodes))
	m.stepChecks.Observe(float64(stats.Checks))
}

// serve exposes the registry on addr until ctx is done.
func (m *metrics) serve(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Infof("serving metrics on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("metrics server: %v", err)
		}
	}()
}
