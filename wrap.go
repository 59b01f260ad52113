package sieve

// Wrapper decorates a filter with cross-cutting behavior: timing,
// logging, authentication, response shaping. A wrapper receives the
// inner filter and returns the decorated one, and must invoke the inner
// filter exactly once per evaluation, leaving its extraction and
// failure untouched unless altering them is the wrapper's purpose.
//
// Wrappers compose through Filter.With, keeping pipeline declarations
// in reading order:
//
//	api := route.With(sieve.Log("api"))
type Wrapper interface {
	Wrap(Filter) Filter
}

// WrapFunc adapts a plain function to the Wrapper interface, the usual
// way to build wrappers outside this package from the public
// combinators:
//
//	var uppercase = sieve.WrapFunc(func(f sieve.Filter) sieve.Filter {
//	    return f.Map(func(s string) string { return strings.ToUpper(s) })
//	})
type WrapFunc func(Filter) Filter

// Wrap applies the function.
func (w WrapFunc) Wrap(f Filter) Filter {
	return w(f)
}

// With applies a wrapper to the filter. Sugar for w.Wrap(f) that keeps
// the pipeline declaration left to right.
func (f Filter) With(w Wrapper) Filter {
	return w.Wrap(f)
}
