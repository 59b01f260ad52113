package sieve

import "context"

// AndThen chains a fallible computation onto the extraction. The
// callback takes a context.Context followed by the filter's extracted
// columns and returns (value, error); parameters are checked at
// composition time like Map. On the receiver's success the callback
// runs, its value becoming a single-value extraction and its error
// propagating as the composed filter's failure. On the receiver's
// failure the callback never runs.
//
// This is where request handling meets application code: look up the
// database, call the downstream service, return the result or an error.
//
//	user := sieve.Path("users").And(sieve.Param[int64]()).
//	    AndThen(func(ctx context.Context, id int64) (*User, error) {
//	        return store.Lookup(ctx, id)
//	    })
func (f Filter) AndThen(fn any) Filter {
	c := fallibleFunc("AndThen", fn)
	c.bind("AndThen", f.n.shape())
	return Filter{&andThenNode{inner: f.n, call: c}}
}

type andThenNode struct {
	inner node
	call  *callable
}

func (n *andThenNode) shape() extract {
	return n.call.resultShape()
}

func (n *andThenNode) run(ctx context.Context, rt *Route) (Tuple, error) {
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
