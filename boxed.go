package sieve

import "context"

// BoxedFilter is a type-erased pipeline handle. Boxing fixes two things
// at the boundary: the shape becomes dynamic, and every failure is
// converted to the canonical *Rejection form, so heterogeneous
// pipelines can live in one routing table and drivers handle one
// failure type. This is also the package's execution entry: evaluation
// of any pipeline happens through Run.
//
// A BoxedFilter is immutable and safe for concurrent use; a server
// shares one across all requests.
type BoxedFilter struct {
	n node
}

// Boxed erases the filter's shape behind a uniformly-typed handle.
// Combining further through Filter() still works, but arity checks
// against the erased shape become a runtime concern, reported as
// KindInternal rejections instead of composition panics.
func (f Filter) Boxed() BoxedFilter {
	return BoxedFilter{&boxedNode{inner: f.n}}
}

// Run evaluates the pipeline against a Route. The Route is borrowed for
// the duration of the call and must not be shared with a concurrent
// evaluation. A non-nil error is always a *Rejection.
func (b BoxedFilter) Run(ctx context.Context, rt *Route) (Tuple, error) {
	if b.n == nil {
		return nil, Reject(KindInternal, "run of zero BoxedFilter")
	}
	return b.n.run(ctx, rt)
}

// Filter re-enters the combinator algebra with the erased shape.
func (b BoxedFilter) Filter() Filter {
	return Filter{b.n}
}

type boxedNode struct {
	inner node
}

func (n *boxedNode) shape() extract {
	return dynamicShape
}

func (n *boxedNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err != nil {
		return nil, AsRejection(err)
	}
	return t, nil
}
