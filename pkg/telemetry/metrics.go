// Package telemetry exposes the Prometheus instruments for the pricing
// engine. The /metrics endpoint is served by the HTTP server.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every application-level instrument.
type Metrics struct {
	apiRequests     *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
	saves           *prometheus.CounterVec
	variantsUpdated *prometheus.CounterVec
	pushesEnqueued  *prometheus.CounterVec
	profitRecalcs   *prometheus.CounterVec
}

// NewMetrics registers and returns the pricing instruments.
func NewMetrics() *Metrics {
	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricora_api_requests_total",
		Help: "Counts API requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricora_api_duration_seconds",
		Help:    "API request latency per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricora_saves_total",
		Help: "Counts pricing saves by target and outcome.",
	}, []string{"target", "status"})

	variantsUpdated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricora_variants_updated_total",
		Help: "Counts variant price writes by target.",
	}, []string{"target"})

	pushesEnqueued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricora_pushes_enqueued_total",
		Help: "Counts marketplace price pushes handed to the queue.",
	}, []string{"channel"})

	profitRecalcs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricora_profit_recalcs_total",
		Help: "Counts profitability snapshot refresh runs by outcome.",
	}, []string{"status"})

	prometheus.MustRegister(
		apiRequests,
		apiDuration,
		saves,
		variantsUpdated,
		pushesEnqueued,
		profitRecalcs,
	)

	return &Metrics{
		apiRequests:     apiRequests,
		apiDuration:     apiDuration,
		saves:           saves,
		variantsUpdated: variantsUpdated,
		pushesEnqueued:  pushesEnqueued,
		profitRecalcs:   profitRecalcs,
	}
}

// ObserveAPIRequest records an API request and latency.
func (m *Metrics) ObserveAPIRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.apiDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSave registers one Save call and how many variants it updated.
func (m *Metrics) RecordSave(target, status string, updated int) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(target, status).Inc()
	if updated > 0 {
		m.variantsUpdated.WithLabelValues(target).Add(float64(updated))
	}
}

// RecordPushEnqueued counts one scheduled marketplace push.
func (m *Metrics) RecordPushEnqueued(channel string) {
	if m == nil {
		return
	}
	m.pushesEnqueued.WithLabelValues(channel).Inc()
}

// RecordProfitRecalc counts one snapshot refresh run.
func (m *Metrics) RecordProfitRecalc(status string) {
	if m == nil {
		return
	}
	m.profitRecalcs.WithLabelValues(status).Inc()
}
