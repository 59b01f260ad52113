package sieve

import "time"

// MetricsProvider allows integration with metrics systems like
// Prometheus, StatsD, etc. Implement this interface to receive
// callbacks on key server events.
type MetricsProvider interface {
	// OnRequest is called after every response is written. Duration
	// covers pipeline evaluation through response post-processing.
	OnRequest(method, path string, status int, duration time.Duration)

	// OnRejection is called when the pipeline rejects a request,
	// before the error response is written.
	OnRejection(kind Kind)

	// OnUpgrade is called when a websocket handshake completes.
	OnUpgrade()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnRequest(_, _ string, _ int, _ time.Duration) {}
func (NoOpMetricsProvider) OnRejection(_ Kind)                            {}
func (NoOpMetricsProvider) OnUpgrade()                                    {}
