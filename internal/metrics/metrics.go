// Package metrics defines Prometheus metrics for kinship.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kinship_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinship_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinship_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	StoreCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinship_store_commands_total",
			Help: "Store commands by name and outcome",
		},
		[]string{"command", "outcome"},
	)

	PersistDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kinship_slot_persist_duration_seconds",
			Help:    "Time spent writing a collection to its slot",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"slot"},
	)

	SlotLoadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinship_slot_load_failures_total",
			Help: "Slots that could not be read or decoded at load",
		},
		[]string{"slot", "reason"},
	)

	CollectionSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kinship_collection_size",
			Help: "Number of records per collection",
		},
		[]string{"collection"},
	)

	EventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinship_events_dropped_total",
			Help: "Change events dropped because the event queue was full",
		},
		[]string{"type"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kinship_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		StoreCommands, PersistDuration, SlotLoadFailures, CollectionSize,
		EventsDropped, WSConnections,
	)
}
