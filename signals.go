package sieve

import "github.com/zoobzio/capitan"

// Server lifecycle signals.
var (
	// ServerStarted is emitted when the server begins accepting connections.
	ServerStarted = capitan.NewSignal(
		"sieve.server.started",
		"Server accepting connections",
	)

	// ServerStopped is emitted when the server has shut down.
	ServerStopped = capitan.NewSignal(
		"sieve.server.stopped",
		"Server shut down",
	)
)

// Request signals.
var (
	// RequestReceived is emitted when a request enters the pipeline.
	RequestReceived = capitan.NewSignal(
		"sieve.request.received",
		"Request entered the pipeline",
	)

	// RequestCompleted is emitted after the response is written.
	RequestCompleted = capitan.NewSignal(
		"sieve.request.completed",
		"Response written",
	)

	// RequestRejected is emitted when the pipeline rejects a request.
	RequestRejected = capitan.NewSignal(
		"sieve.request.rejected",
		"Pipeline rejected the request",
	)
)

// Filter signals.
var (
	// FilterEvaluated is emitted when a logged filter finishes evaluating.
	FilterEvaluated = capitan.NewSignal(
		"sieve.filter.evaluated",
		"Wrapped filter finished evaluating",
	)

	// WsUpgraded is emitted when a websocket handshake completes.
	WsUpgraded = capitan.NewSignal(
		"sieve.ws.upgraded",
		"WebSocket handshake completed",
	)
)
