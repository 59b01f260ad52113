package sieve

import "context"

// Header extracts a request header parsed as T. An absent header
// rejects as KindMissing and an unparsable value as KindInvalid, so an
// Or over alternative header names surfaces the validation failure
// rather than a generic miss when one header was present but malformed.
//
//	ip := sieve.Header[string]("x-real-ip").
//	    Or(sieve.Header[string]("x-forwarded-for")).
//	    Unify()
func Header[T any](name string) Filter {
	parse := parserFor[T]()
	return Extract(func(_ context.Context, rt *Route) (T, error) {
		var zero T
		raw, ok := rt.HeaderValue(name)
		if !ok {
			return zero, Rejectf(KindMissing, "missing request header %q", name)
		}
		v, err := parse(raw)
		if err != nil {
			return zero, Rejectf(KindInvalid, "invalid request header %q", name).WithCause(err)
		}
		return v, nil
	})
}

// HeaderDefault extracts a request header parsed as T, substituting the
// default when the header is absent. An unparsable value still rejects
// as KindInvalid; the default covers absence, not malformed input.
func HeaderDefault[T any](name string, def T) Filter {
	parse := parserFor[T]()
	return Extract(func(_ context.Context, rt *Route) (T, error) {
		raw, ok := rt.HeaderValue(name)
		if !ok {
			return def, nil
		}
		v, err := parse(raw)
		if err != nil {
			var zero T
			return zero, Rejectf(KindInvalid, "invalid request header %q", name).WithCause(err)
		}
		return v, nil
	})
}

// HeaderExact matches only when the header carries exactly the given
// value, extracting nothing. A routing condition, so absence and
// mismatch both reject as KindNotMatched.
func HeaderExact(name, value string) Filter {
	return Check(func(_ context.Context, rt *Route) error {
		raw, ok := rt.HeaderValue(name)
		if !ok || raw != value {
			return Rejectf(KindNotMatched, "header %q mismatch", name)
		}
		return nil
	})
}
