package sieve

import "context"

// Or tries an alternative. The receiver evaluates first; on success the
// result is an Either tagged Left and the other filter is never
// evaluated. On failure the Route is restored to its pre-attempt
// checkpoint so the other filter sees the request from the same
// starting point, and its success is tagged Right. The branches are
// never evaluated concurrently.
//
// When both branches fail the rejections are combined: the more
// specific kind is surfaced (a validation failure outranks a plain
// non-match) and both originals stay reachable through Unwrap. If the
// context is already done after the first failure, that failure
// propagates without attempting the alternative.
//
// Both branches extracting congruent shapes can be collapsed back to a
// plain tuple with Unify.
func (f Filter) Or(other Filter) Filter {
	ex := eitherColumn(f.n.shape(), other.n.shape())
	return Filter{&orNode{first: f.n, second: other.n, ex: ex}}
}

type orNode struct {
	first  node
	second node
	ex     extract
}

func (n *orNode) shape() extract {
	return n.ex
}

func (n *orNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	cp := rt.Checkpoint()
	a, errA := n.first.run(ctx, rt)
	if errA == nil {
		return One(Left(a)), nil
	}
	if ctx.Err() != nil {
		return nil, errA
	}
	rt.Restore(cp)
	b, errB := n.second.run(ctx, rt)
	if errB == nil {
		return One(Right(b)), nil
	}
	return nil, combineRejections(errA, errB)
}
