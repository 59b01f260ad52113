package sieve

import (
	"context"
	"fmt"
	"reflect"
)

var (
	errType = reflect.TypeFor[error]()
	ctxType = reflect.TypeFor[context.Context]()
)

// callable adapts a user callback for Map and AndThen. The callback's
// parameter list is captured once via reflection and verified against
// the inner filter's shape at composition time, so by the time requests
// flow the invocation cannot fail a type check unless the shape was
// erased by boxing.
type callable struct {
	fn      reflect.Value
	params  []reflect.Type
	wantCtx bool
	wantErr bool
	out     reflect.Type
}

// pureFunc validates fn as a Map callback: func(args...) R. Pure means
// no context and no error return; use AndThen for fallible work.
func pureFunc(op string, fn any) *callable {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		panicf("%s requires a function, got %T", op, fn)
	}
	if t.IsVariadic() {
		panicf("%s callback must not be variadic", op)
	}
	if t.NumOut() != 1 {
		panicf("%s callback must return exactly one value, %s returns %d", op, t, t.NumOut())
	}
	if t.Out(0) == errType {
		panicf("%s callback must not return an error, use AndThen for fallible callbacks", op)
	}
	if t.NumIn() > 0 && t.In(0) == ctxType {
		panicf("%s callback is pure and takes no context, use AndThen for contextual callbacks", op)
	}
	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}
	return &callable{fn: reflect.ValueOf(fn), params: params, out: t.Out(0)}
}

// fallibleFunc validates fn as an AndThen callback:
// func(ctx, args...) (R, error).
func fallibleFunc(op string, fn any) *callable {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		panicf("%s requires a function, got %T", op, fn)
	}
	if t.IsVariadic() {
		panicf("%s callback must not be variadic", op)
	}
	if t.NumIn() < 1 || t.In(0) != ctxType {
		panicf("%s callback must take a context.Context first, got %s", op, t)
	}
	if t.NumOut() != 2 || t.Out(1) != errType {
		panicf("%s callback must return (value, error), got %s", op, t)
	}
	params := make([]reflect.Type, t.NumIn()-1)
	for i := range params {
		params[i] = t.In(i + 1)
	}
	return &callable{fn: reflect.ValueOf(fn), params: params, wantCtx: true, wantErr: true, out: t.Out(0)}
}

// bind checks the callback's parameters against the filter's shape.
// Dynamic shapes defer to the runtime check in invoke.
func (c *callable) bind(op string, ex extract) {
	if ex.dynamic {
		return
	}
	if len(ex.cols) != len(c.params) {
		panicf("%s callback takes %d arguments, filter extracts %s", op, len(c.params), ex)
	}
	for i, col := range ex.cols {
		if col.typ == nil {
			continue
		}
		if !col.typ.AssignableTo(c.params[i]) {
			panicf("%s callback argument %d is %s, filter extracts %s", op, i, c.params[i], ex)
		}
	}
}

// invoke applies the callback to an extracted tuple. The shape checks
// here only fire for boxed pipelines, where arity became a runtime
// concern; statically shaped pipelines were verified by bind.
func (c *callable) invoke(ctx context.Context, t Tuple) (any, error) {
	if len(t) != len(c.params) {
		return nil, Rejectf(KindInternal, "callback takes %d arguments, pipeline produced %d", len(c.params), len(t))
	}
	args := make([]reflect.Value, 0, len(t)+1)
	if c.wantCtx {
		args = append(args, reflect.ValueOf(ctx))
	}
	for i, v := range t {
		if v == nil {
			args = append(args, reflect.Zero(c.params[i]))
			continue
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(c.params[i]) {
			return nil, Rejectf(KindInternal, "callback argument %d wants %s, pipeline produced %T", i, c.params[i], v)
		}
		args = append(args, rv)
	}
	out := c.fn.Call(args)
	if c.wantErr {
		if e := out[1].Interface(); e != nil {
			return nil, e.(error)
		}
	}
	return out[0].Interface(), nil
}

// resultShape is the single-column shape of the callback's return value.
func (c *callable) resultShape() extract {
	return extract{cols: []column{{typ: c.out}}}
}

func panicf(format string, args ...any) {
	panic("sieve: " + fmt.Sprintf(format, args...))
}
