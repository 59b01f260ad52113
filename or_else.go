package sieve

import "context"

// RecoverFunc turns a pipeline failure into a substitute extraction.
// Returning an error keeps the pipeline failed with that error. The
// callback never sees the Route; recovery reshapes outcomes, not
// requests.
type RecoverFunc func(ctx context.Context, err error) (Tuple, error)

// OrElse substitutes a recovery outcome for a failure while keeping the
// filter's original shape. On success the extraction passes through
// untouched. On failure the callback receives the failure and its tuple
// must conform to the receiver's shape; a nonconforming recovery is
// reported as a KindInternal rejection since downstream callbacks were
// checked against that shape. Use Recover when the recovery outcome has
// a shape of its own.
//
//	limit := sieve.Query[int]("limit").
//	    OrElse(func(ctx context.Context, err error) (sieve.Tuple, error) {
//	        return sieve.One(50), nil
//	    })
func (f Filter) OrElse(fn RecoverFunc) Filter {
	return Filter{&orElseNode{inner: f.n, fn: fn, ex: f.n.shape()}}
}

type orElseNode struct {
	inner node
	fn    RecoverFunc
	ex    extract
}

func (n *orElseNode) shape() extract {
	return n.ex
}

func (n *orElseNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err == nil {
		return t, nil
	}
	rec, rerr := n.fn(ctx, err)
	if rerr != nil {
		return nil, rerr
	}
	if !n.ex.conforms(rec) {
		return nil, Rejectf(KindInternal, "recovery produced %s, filter extracts %s", rec, n.ex)
	}
	return rec, nil
}
