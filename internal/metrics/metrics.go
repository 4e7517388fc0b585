// Package metrics exposes Prometheus instrumentation for the relay
// pipeline. Label cardinality is kept bounded: intents and rejection
// reasons come from closed sets, persistence operations from a fixed list.
// All collectors are safe for concurrent use and served on the ops router
// via promhttp.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// EventsTotal counts dispatched platform events by classified intent.
	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_total",
			Help: "Total number of dispatched platform events by intent.",
		},
		[]string{"intent"},
	)

	// ConfessionsDelivered counts confessions accepted for delivery.
	ConfessionsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_confessions_delivered_total",
			Help: "Total number of confessions accepted for anonymized delivery.",
		},
	)

	// ConfessionsRejected counts rejected confessions by reason.
	ConfessionsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_confessions_rejected_total",
			Help: "Total number of rejected confessions by reason.",
		},
		[]string{"reason"},
	)

	// PersistenceFailures counts failed config-store writes by operation.
	PersistenceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_persistence_failures_total",
			Help: "Total number of failed config store operations.",
		},
		[]string{"op"},
	)

	// AuditRecorded counts audit log entries successfully persisted.
	AuditRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_audit_recorded_total",
			Help: "Total number of audit log entries persisted.",
		},
	)

	// AuditDropped counts audit log entries dropped on a full queue.
	AuditDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_audit_dropped_total",
			Help: "Total number of audit log entries dropped because the queue was full.",
		},
	)

	// DispatchPanics counts event handlers recovered from a panic.
	DispatchPanics = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_dispatch_panics_total",
			Help: "Total number of panics recovered at the event dispatch boundary.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		EventsTotal,
		ConfessionsDelivered,
		ConfessionsRejected,
		PersistenceFailures,
		AuditRecorded,
		AuditDropped,
		DispatchPanics,
	)
}
