package sieve

import (
	"context"
	"net/http"
	"strings"
)

// Method matches the request method and extracts nothing. A mismatch
// rejects as KindMethodNotAllowed, which outranks KindNotMatched, so a
// routing table that matched a path but not a method reports 405 rather
// than 404 once the combined rejection reaches the server.
func Method(method string) Filter {
	m := strings.ToUpper(method)
	return Check(func(_ context.Context, rt *Route) error {
		if rt.Method() != m {
			return Rejectf(KindMethodNotAllowed, "method %s not allowed", rt.Method())
		}
		return nil
	})
}

// Get matches GET requests.
func Get() Filter { return Method(http.MethodGet) }

// Post matches POST requests.
func Post() Filter { return Method(http.MethodPost) }

// Put matches PUT requests.
func Put() Filter { return Method(http.MethodPut) }

// Patch matches PATCH requests.
func Patch() Filter { return Method(http.MethodPatch) }

// Delete matches DELETE requests.
func Delete() Filter { return Method(http.MethodDelete) }

// Head matches HEAD requests.
func Head() Filter { return Method(http.MethodHead) }

// Options matches OPTIONS requests.
func Options() Filter { return Method(http.MethodOptions) }
