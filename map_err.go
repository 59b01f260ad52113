package sieve

import "context"

// MapErr rewrites failures without touching the success path. The
// callback receives the failure and returns its replacement; returning
// nil is treated as declining, keeping the original failure so MapErr
// can never silently turn a failure into a nil-error success. Typical
// use is attaching domain context or reclassifying a rejection's kind
// before it crosses an Or.
func (f Filter) MapErr(fn func(err error) error) Filter {
	return Filter{&mapErrNode{inner: f.n, fn: fn}}
}

type mapErrNode struct {
	inner node
	fn    func(error) error
}

func (n *mapErrNode) shape() extract {
	return n.inner.shape()
}

func (n *mapErrNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err == nil {
		return t, nil
	}
	if mapped := n.fn(err); mapped != nil {
		return nil, mapped
	}
	return nil, err
}
