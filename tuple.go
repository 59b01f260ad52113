package sieve

import (
	"fmt"
	"strings"
)

// Tuple is the ordered sequence of values a filter extracts on success.
// Arity 0 means the filter matched but extracted nothing. Combining two
// filters with And concatenates their tuples; a zero-arity side
// contributes no elements, so a pure matcher combined with an extractor
// yields the extractor's values alone, never a nested pair.
//
// Tuples are value slices and must be treated as immutable once a filter
// has produced them.
type Tuple []any

// Values builds a tuple from the given elements in order.
func Values(vals ...any) Tuple {
	return Tuple(vals)
}

// One builds a single-element tuple.
func One(v any) Tuple {
	return Tuple{v}
}

// Arity returns the number of extracted elements.
func (t Tuple) Arity() int {
	return len(t)
}

// String renders the tuple for diagnostics, e.g. "(42, \"users\")".
func (t Tuple) String() string {
	if len(t) == 0 {
		return "()"
	}
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = fmt.Sprintf("%#v", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// combine concatenates two tuples in order. Arity arithmetic is enforced
// at composition time by the shape algebra, so this stays a plain append.
func combine(a, b Tuple) Tuple {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(Tuple, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Either is the tagged union Or produces: Left carries the first
// branch's tuple, Right the second's. When both branches extract
// congruent shapes, Unify collapses the tag away.
type Either struct {
	right bool
	vals  Tuple
}

// Left tags a tuple as the first branch's result.
func Left(vals Tuple) Either {
	return Either{vals: vals}
}

// Right tags a tuple as the second branch's result.
func Right(vals Tuple) Either {
	return Either{right: true, vals: vals}
}

// IsRight reports whether the second branch produced the value.
func (e Either) IsRight() bool {
	return e.right
}

// Values returns the winning branch's tuple.
func (e Either) Values() Tuple {
	return e.vals
}

// String renders the tagged value for diagnostics.
func (e Either) String() string {
	if e.right {
		return "Right" + e.vals.String()
	}
	return "Left" + e.vals.String()
}

// Unit is the placeholder value the Unit combinator extracts in place of
// an empty tuple, so zero-arity filters can flow through code paths that
// expect at least one column. Reply rendering treats it as "no body".
type Unit struct{}
