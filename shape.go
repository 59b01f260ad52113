package sieve

import (
	"fmt"
	"reflect"
	"strings"
)

// MaxArity is the largest extraction arity a composed filter may declare.
// And panics at composition time when concatenation would exceed it.
const MaxArity = 16

// column describes one position of a filter's extracted tuple: the static
// type of the value, plus branch shapes when the value is an Either.
type column struct {
	typ    reflect.Type
	either *eitherShape
}

// eitherShape records the two branch shapes behind an Either column so
// Unify can verify congruence and Map callbacks can be checked through it.
type eitherShape struct {
	left  extract
	right extract
}

// extract is a filter's composition-time shape: the ordered columns of
// its tuple. A dynamic shape belongs to a boxed filter whose columns are
// erased; checks against it are deferred to run time.
type extract struct {
	dynamic bool
	cols    []column
}

var (
	eitherType = reflect.TypeFor[Either]()
	unitType   = reflect.TypeFor[Unit]()
)

// emptyShape is the arity-0 shape shared by pure matchers.
var emptyShape = extract{}

// dynamicShape is the erased shape of boxed filters.
var dynamicShape = extract{dynamic: true}

// shapeOf builds a static single-column shape for type T.
func shapeOf[T any]() extract {
	return extract{cols: []column{{typ: reflect.TypeFor[T]()}}}
}

// shape2Of builds a static two-column shape.
func shape2Of[A, B any]() extract {
	return extract{cols: []column{
		{typ: reflect.TypeFor[A]()},
		{typ: reflect.TypeFor[B]()},
	}}
}

// eitherColumn builds the single-column shape Or and Recover produce.
func eitherColumn(left, right extract) extract {
	return extract{cols: []column{{
		typ:    eitherType,
		either: &eitherShape{left: left, right: right},
	}}}
}

// arity returns the column count, or -1 when the shape is dynamic.
func (e extract) arity() int {
	if e.dynamic {
		return -1
	}
	return len(e.cols)
}

// concat merges two shapes for And. Either side being dynamic erases the
// result. Exceeding MaxArity is a composition error.
func concat(a, b extract) (extract, error) {
	if a.dynamic || b.dynamic {
		return dynamicShape, nil
	}
	n := len(a.cols) + len(b.cols)
	if n > MaxArity {
		return extract{}, fmt.Errorf("combined arity %d exceeds the maximum of %d", n, MaxArity)
	}
	cols := make([]column, 0, n)
	cols = append(cols, a.cols...)
	cols = append(cols, b.cols...)
	return extract{cols: cols}, nil
}

// congruent reports whether two shapes are interchangeable: same arity,
// same column types, and congruent branch shapes behind Either columns.
// A dynamic side is treated as congruent with anything; the check moves
// to run time.
func congruent(a, b extract) bool {
	if a.dynamic || b.dynamic {
		return true
	}
	if len(a.cols) != len(b.cols) {
		return false
	}
	for i := range a.cols {
		ca, cb := a.cols[i], b.cols[i]
		if ca.typ != cb.typ {
			return false
		}
		if ca.either != nil && cb.either != nil {
			if !congruent(ca.either.left, cb.either.left) || !congruent(ca.either.right, cb.either.right) {
				return false
			}
		}
	}
	return true
}

// conforms reports whether a runtime tuple fits this shape. Used by
// OrElse, whose recovery callback promises the original shape, and by
// callbacks invoked through a dynamic shape.
func (e extract) conforms(t Tuple) bool {
	if e.dynamic {
		return true
	}
	if len(t) != len(e.cols) {
		return false
	}
	for i, v := range t {
		if v == nil {
			continue
		}
		vt := reflect.TypeOf(v)
		if vt != e.cols[i].typ && !vt.AssignableTo(e.cols[i].typ) {
			return false
		}
	}
	return true
}

// String renders the shape for composition diagnostics, e.g.
// "(int64, string)" or "(dynamic)".
func (e extract) String() string {
	if e.dynamic {
		return "(dynamic)"
	}
	if len(e.cols) == 0 {
		return "()"
	}
	parts := make([]string, len(e.cols))
	for i, c := range e.cols {
		if c.either != nil {
			parts[i] = fmt.Sprintf("Either[%s|%s]", c.either.left, c.either.right)
			continue
		}
		parts[i] = c.typ.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
