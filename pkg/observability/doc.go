/*
Package observability turns machine lifecycle hooks into metrics and traces.

Metrics records Prometheus counters and histograms per layer and kind.
Tracer opens one OpenTelemetry span per activation (Enter to Exit).
Both expose Hooks, ready for statesync.WithLifecycleHooks.
*/
package observability
