package sieve

import "context"

// Recover converts failures into successes of an unrelated shape. The
// result is an Either: Left carries the receiver's extraction when it
// succeeded, Right carries the recovery tuple when it did not. If the
// callback is total the composed filter never fails; if the callback
// returns an error, that error propagates.
//
// The canonical use is the pipeline root, turning every rejection into
// a presentable reply:
//
//	root := api.Recover(func(ctx context.Context, err error) (sieve.Tuple, error) {
//	    rej := sieve.AsRejection(err)
//	    return sieve.One(sieve.WithStatus(sieve.JSON(errBody(rej)), rej.Kind().HTTPStatus())), nil
//	})
func (f Filter) Recover(fn RecoverFunc) Filter {
	return Filter{&recoverNode{
		inner: f.n,
		fn:    fn,
		ex:    eitherColumn(f.n.shape(), dynamicShape),
	}}
}

type recoverNode struct {
	inner node
	fn    RecoverFunc
	ex    extract
}

func (n *recoverNode) shape() extract {
	return n.ex
}

func (n *recoverNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	t, err := n.inner.run(ctx, rt)
	if err == nil {
		return One(Left(t)), nil
	}
	rec, rerr := n.fn(ctx, err)
	if rerr != nil {
		return nil, rerr
	}
	return One(Right(rec)), nil
}
