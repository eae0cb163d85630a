// Package metrics records build and validation metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection needs no nil checks. The preview server swaps in a
// PrometheusRecorder and exposes it through HTTPHandler.
package metrics
