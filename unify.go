package sieve

import "context"

// Unify collapses an Or whose branches extract congruent shapes. The
// receiver must extract exactly one Either whose two branch shapes
// match; the composed filter discards the tag and extracts the winning
// branch's tuple directly. A pure projection: it never fails beyond the
// receiver's own failures.
//
// Panics at composition time if the receiver's shape is not a single
// Either or the branches disagree.
//
//	ip := sieve.Header[string]("x-real-ip").
//	    Or(sieve.Header[string]("x-forwarded-for")).
//	    Unify()
func (f Filter) Unify() Filter {
	ex := f.n.shape()
	if ex.dynamic {
		return Filter{&unifyNode{inner: f.n, ex: dynamicShape}}
	}
	if len(ex.cols) != 1 || ex.cols[0].either == nil {
		panicf("Unify requires a filter extracting a single Either, got %s", ex)
	}
	es := ex.cols[0].either
	if !congruent(es.left, es.right) {
		panicf("Unify requires congruent branches, got %s and %s", es.left, es.right)
	}
	result := es.left
	if result.dynamic && !es.right.dynamic {
		result = es.right
	}
	return Filter{&unifyNode{inner: f.n, ex: result}}
}

type unifyNode struct {
	inner node
	ex    extract
}

func (n *unifyNode) shape() extract {
	return n.ex
}

func (n *unifyNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err != nil {
		return nil, err
	}
	if len(t) != 1 {
		return nil, Rejectf(KindInternal, "Unify requires a single Either, pipeline produced %d values", len(t))
	}
	e, ok := t[0].(Either)
	if !ok {
		return nil, Rejectf(KindInternal, "Unify requires an Either, pipeline produced %T", t[0])
	}
	return e.Values(), nil
}
