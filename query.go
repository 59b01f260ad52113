package sieve

import (
	"context"
	"net/url"
)

// Query extracts a query parameter parsed as T. An absent parameter
// rejects as KindMissing and an unparsable value as KindInvalid.
func Query[T any](name string) Filter {
	parse := parserFor[T]()
	return Extract(func(_ context.Context, rt *Route) (T, error) {
		var zero T
		raw, ok := rt.QueryValue(name)
		if !ok {
			return zero, Rejectf(KindMissing, "missing query parameter %q", name)
		}
		v, err := parse(raw)
		if err != nil {
			return zero, Rejectf(KindInvalid, "invalid query parameter %q", name).WithCause(err)
		}
		return v, nil
	})
}

// QueryDefault extracts a query parameter parsed as T, substituting the
// default when the parameter is absent.
func QueryDefault[T any](name string, def T) Filter {
	parse := parserFor[T]()
	return Extract(func(_ context.Context, rt *Route) (T, error) {
		raw, ok := rt.QueryValue(name)
		if !ok {
			return def, nil
		}
		v, err := parse(raw)
		if err != nil {
			var zero T
			return zero, Rejectf(KindInvalid, "invalid query parameter %q", name).WithCause(err)
		}
		return v, nil
	})
}

// QueryValues extracts the full parsed query. Always matches.
func QueryValues() Filter {
	return Extract(func(_ context.Context, rt *Route) (url.Values, error) {
		return rt.Queries(), nil
	})
}
