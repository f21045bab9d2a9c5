/*
Package observability exposes interpreter activity as Prometheus metrics.

Metrics implements ports.DispatchObserver; attach it to an engine with
runtime.WithObserver (or ali.WithObserver) and serve Handler on /metrics.
*/
package observability
