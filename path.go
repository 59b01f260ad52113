package sieve

import (
	"context"
	"strings"
)

// Path matches literal path segments and extracts nothing. The pattern
// may name several segments at once: Path("api/v1") consumes two. The
// cursor advances only as segments match, so a failed Path inside an Or
// is rewound along with everything else in the branch.
//
// Panics at composition time on a pattern with no segments.
func Path(pattern string) Filter {
	lits := splitSegments(pattern)
	if len(lits) == 0 {
		panicf("Path requires at least one literal segment, got %q", pattern)
	}
	return Check(func(_ context.Context, rt *Route) error {
		for _, lit := range lits {
			seg, ok := rt.Peek()
			if !ok || seg != lit {
				return Rejectf(KindNotMatched, "expected path segment %q", lit)
			}
			rt.Advance()
		}
		return nil
	})
}

// Param consumes the next path segment parsed as T. Absence or an
// unparsable segment both reject as KindNotMatched: a route whose
// parameter does not parse is a route that does not apply, leaving Or
// free to try a sibling.
//
//	sieve.Path("users").And(sieve.Param[int64]())
func Param[T any]() Filter {
	parse := parserFor[T]()
	return Extract(func(_ context.Context, rt *Route) (T, error) {
		var zero T
		seg, ok := rt.Peek()
		if !ok {
			return zero, Reject(KindNotMatched, "missing path parameter")
		}
		v, err := parse(seg)
		if err != nil {
			return zero, Rejectf(KindNotMatched, "path parameter %q", seg).WithCause(err)
		}
		rt.Advance()
		return v, nil
	})
}

// PathEnd matches only when every path segment has been consumed,
// anchoring a route so "/users" does not also match "/users/7".
func PathEnd() Filter {
	return Check(func(_ context.Context, rt *Route) error {
		if !rt.Depleted() {
			return Rejectf(KindNotMatched, "trailing path segments %q", strings.Join(rt.Remaining(), "/"))
		}
		return nil
	})
}

// Tail consumes all remaining path segments and extracts them joined
// with "/". Matches even when nothing remains, extracting "".
func Tail() Filter {
	return Extract(func(_ context.Context, rt *Route) (string, error) {
		rest := rt.Remaining()
		for range rest {
			rt.Advance()
		}
		return strings.Join(rest, "/"), nil
	})
}
