package sieve

import "context"

// And sequences two filters. The receiver evaluates first; if it fails,
// its failure propagates and the other filter is never evaluated. On
// success the other filter evaluates against the same Route, observing
// any cursor progress the first made, and the two extractions are
// concatenated in order. Zero-arity sides contribute no elements: a
// pure matcher And an extractor yields the extractor's values alone.
//
// Panics at composition time if the combined arity would exceed
// MaxArity.
func (f Filter) And(other Filter) Filter {
	ex, err := concat(f.n.shape(), other.n.shape())
	if err != nil {
		panicf("And: %v", err)
	}
	return Filter{&andNode{first: f.n, second: other.n, ex: ex}}
}

type andNode struct {
	first  node
	second node
	ex     extract
}

func (n *andNode) shape() extract {
	return n.ex
}

func (n *andNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	a, err := n.first.run(ctx, rt)
	if err != nil {
		return nil, err
	}
	b, err := n.second.run(ctx, rt)
	if err != nil {
		return nil, err
	}
	return combine(a, b), nil
}
