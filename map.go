package sieve

import "context"

// Map transforms the extraction with a pure function. The callback's
// parameters must match the filter's extracted columns element for
// element; arity or type mismatch panics at composition time. The
// result is a single-value extraction wrapping the callback's return.
//
// Map never fails on its own: the composed filter fails exactly when
// the receiver fails, with the same failure. Use AndThen when the
// transformation itself can fail or needs a context.
//
//	sum := sieve.Param[int]().And(sieve.Param[int]()).
//	    Map(func(a, b int) int { return a + b })
func (f Filter) Map(fn any) Filter {
	c := pureFunc("Map", fn)
	c.bind("Map", f.n.shape())
	return Filter{&mapNode{inner: f.n, call: c}}
}

type mapNode struct {
	inner node
	call  *callable
}

func (n *mapNode) shape() extract {
	return n.call.resultShape()
}

func (n *mapNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err != nil {
		return nil, err
	}
	v, err := n.call.invoke(ctx, t)
	if err != nil {
		return nil, err
	}
	return One(v), nil
}
