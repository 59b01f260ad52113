package sieve

import (
	"context"
)

// node is the execution contract every pipeline stage implements: run one
// evaluation against a borrowed Route, and report the composition-time
// shape of what it extracts. It is unexported so pipeline authors cannot
// invoke evaluation re-entrantly; execution enters through BoxedFilter.
//
// Implementations must be immutable after construction, hold no
// per-invocation state, and be safe for concurrent run calls.
type node interface {
	run(ctx context.Context, rt *Route) (Tuple, error)
	shape() extract
}

// Filter is a composable pipeline stage. A filter either extracts a
// Tuple from the request or fails with an error, and larger pipelines
// are built by combining smaller ones: And sequences two filters and
// concatenates their extractions, Or tries an alternative, Map and
// AndThen transform extractions, OrElse and Recover turn failures back
// into successes.
//
// Filters are cheap immutable handles. Every combinator returns a new
// Filter and never mutates its operands, so a filter can be reused as a
// building block in any number of pipelines. The zero Filter is not
// usable; start from a constructor such as Any, Check, Extract, or one
// of the request leaves (Path, Method, Header, Query, JSONBody, Ws).
//
// Shape discipline is enforced when pipelines are assembled, not when
// requests flow: combinators that take callbacks verify arity and
// parameter types against the filter's extraction at composition time
// and panic with a diagnostic on mismatch, the same contract as
// registering a malformed pattern with regexp.MustCompile. A filter
// that has passed composition never fails a shape check at run time.
type Filter struct {
	n node
}

// Arity returns the number of values the filter extracts, or -1 when
// the shape has been erased by boxing.
func (f Filter) Arity() int {
	return f.n.shape().arity()
}

// leafNode adapts a plain function and a declared shape into the
// execution contract. All request leaves bottom out here.
type leafNode struct {
	fn func(ctx context.Context, rt *Route) (Tuple, error)
	ex extract
}

func (n *leafNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	return n.fn(ctx, rt)
}

func (n *leafNode) shape() extract {
	return n.ex
}

// Any matches every request and extracts nothing. It is the identity
// for And and the usual root for pipelines that begin with a Map or a
// wrapper rather than a request condition.
func Any() Filter {
	return Filter{&leafNode{
		ex: emptyShape,
		fn: func(context.Context, *Route) (Tuple, error) {
			return nil, nil
		},
	}}
}

// Check builds a zero-arity filter from a predicate over the Route. A
// nil return means the request matched; returning an error rejects it.
// Return a *Rejection to control how the failure ranks in Or; any other
// error is adopted as KindInternal at the boxing boundary.
func Check(fn func(ctx context.Context, rt *Route) error) Filter {
	return Filter{&leafNode{
		ex: emptyShape,
		fn: func(ctx context.Context, rt *Route) (Tuple, error) {
			if err := fn(ctx, rt); err != nil {
				return nil, err
			}
			return nil, nil
		},
	}}
}

// Extract builds a single-value filter from a function over the Route.
// The extracted type is fixed at composition time, so downstream Map
// and AndThen callbacks are checked against it.
func Extract[A any](fn func(ctx context.Context, rt *Route) (A, error)) Filter {
	return Filter{&leafNode{
		ex: shapeOf[A](),
		fn: func(ctx context.Context, rt *Route) (Tuple, error) {
			v, err := fn(ctx, rt)
			if err != nil {
				return nil, err
			}
			return One(v), nil
		},
	}}
}

// Extract2 builds a two-value filter from a function over the Route.
func Extract2[A, B any](fn func(ctx context.Context, rt *Route) (A, B, error)) Filter {
	return Filter{&leafNode{
		ex: shape2Of[A, B](),
		fn: func(ctx context.Context, rt *Route) (Tuple, error) {
			a, b, err := fn(ctx, rt)
			if err != nil {
				return nil, err
			}
			return Values(a, b), nil
		},
	}}
}
