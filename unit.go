package sieve

import "context"

var unitShape = extract{cols: []column{{typ: unitType}}}

// Unit normalizes a zero-arity filter to extract a single Unit value,
// so pure matchers can flow through code paths that expect at least one
// column. Reply rendering treats the Unit value as an empty success.
//
// Panics at composition time if the receiver extracts anything.
func (f Filter) Unit() Filter {
	ex := f.n.shape()
	if !ex.dynamic && len(ex.cols) != 0 {
		panicf("Unit requires a zero-arity filter, got %s", ex)
	}
	return Filter{&unitNode{inner: f.n}}
}

type unitNode struct {
	inner node
}

func (n *unitNode) shape() extract {
	return unitShape
}

func (n *unitNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err != nil {
		return nil, err
	}
	if len(t) != 0 {
		return nil, Rejectf(KindInternal, "Unit requires an empty extraction, pipeline produced %d values", len(t))
	}
	return One(Unit{}), nil
}
