package sieve

import "github.com/zoobzio/capitan"

// Field keys for request and filter events.
var (
	// KeyRequestID is the server-assigned request identifier.
	KeyRequestID = capitan.NewStringKey("request_id")

	// KeyMethod is the request method.
	KeyMethod = capitan.NewStringKey("method")

	// KeyPath is the request path as received.
	KeyPath = capitan.NewStringKey("path")

	// KeyStatus is the response status code.
	KeyStatus = capitan.NewIntKey("status")

	// KeyDuration is the time taken to evaluate or respond.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyKind is the rejection kind label.
	KeyKind = capitan.NewStringKey("kind")

	// KeyFilter is the name given to a logged filter.
	KeyFilter = capitan.NewStringKey("filter")

	// KeyAddr is the server listen address.
	KeyAddr = capitan.NewStringKey("addr")
)
