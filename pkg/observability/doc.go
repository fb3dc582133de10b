// Package observability provides Prometheus metrics for lint runs.
//
// # Overview
//
// A lint run is short lived, so metrics are not served over HTTP. They are
// collected in a private registry and written once in the text exposition
// format, ready for node_exporter's textfile collector.
//
// # Prometheus Metrics
//
//	metrics := observability.NewMetrics(nil)
//	metrics.RecordFile("catalog")
//	metrics.RecordViolation("no-missing-keys", "error")
//
//	if err := metrics.WriteTextfile("/var/lib/node_exporter/i18nlint.prom"); err != nil {
//		log.Warn(err)
//	}
//
// All Record helpers are safe on a nil *Metrics.
package observability
