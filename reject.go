package sieve

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a rejection by specificity. Kinds are ordered: a higher
// kind means the filter got further before failing, and Or prefers to
// surface the higher of two failed branches. KindNotMatched means the
// filter simply does not apply to the request; every other kind means the
// filter applied and found the input wanting.
type Kind int

const (
	// KindNotMatched is the weakest rejection: this filter does not
	// apply, try something else.
	KindNotMatched Kind = iota

	// KindMethodNotAllowed is a path that matched with a method that
	// did not.
	KindMethodNotAllowed

	// KindMissing is a required header or parameter that was absent.
	KindMissing

	// KindUnsupported is a request body in a content type the filter
	// cannot decode.
	KindUnsupported

	// KindOversize is a request body exceeding the permitted length.
	KindOversize

	// KindInvalid is input that was present but failed parsing or
	// validation.
	KindInvalid

	// KindInternal is a failure of the pipeline itself rather than the
	// request, including non-rejection errors adopted at the boxing
	// boundary.
	KindInternal
)

// String returns the snake_case label used in telemetry fields.
func (k Kind) String() string {
	switch k {
	case KindNotMatched:
		return "not_matched"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindMissing:
		return "missing"
	case KindUnsupported:
		return "unsupported"
	case KindOversize:
		return "oversize"
	case KindInvalid:
		return "invalid"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// HTTPStatus returns the status code a server should answer with when a
// rejection of this kind reaches the pipeline root.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotMatched:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindMissing:
		return http.StatusBadRequest
	case KindUnsupported:
		return http.StatusUnsupportedMediaType
	case KindOversize:
		return http.StatusRequestEntityTooLarge
	case KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Rejection is the canonical pipeline failure. Leaves construct one with
// Reject or Rejectf; Or combines two into one that answers for both
// branches while retaining each for provenance; AsRejection adopts
// foreign errors losslessly at the boxing boundary.
type Rejection struct {
	kind  Kind
	msg   string
	cause error

	// Both attempts of a failed Or, nil otherwise.
	left  error
	right error
}

// Reject builds a rejection of the given kind.
func Reject(kind Kind, msg string) *Rejection {
	return &Rejection{kind: kind, msg: msg}
}

// Rejectf builds a rejection with a formatted message.
func Rejectf(kind Kind, format string, args ...any) *Rejection {
	return &Rejection{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WithCause attaches the underlying error and returns the rejection.
// The cause stays reachable through errors.Is and errors.As.
func (r *Rejection) WithCause(err error) *Rejection {
	r.cause = err
	return r
}

// Kind returns the rejection's classification. For a combined rejection
// this is the more specific branch's kind.
func (r *Rejection) Kind() Kind {
	return r.kind
}

// Message returns the human-readable description without the cause.
func (r *Rejection) Message() string {
	return r.msg
}

// Cause returns the underlying error, if any.
func (r *Rejection) Cause() error {
	return r.cause
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	msg := r.msg
	if msg == "" {
		msg = r.kind.String()
	}
	if r.cause != nil {
		return msg + ": " + r.cause.Error()
	}
	return msg
}

// Unwrap exposes the failure tree: both branches for a combined
// rejection, otherwise the cause. This keeps errors.Is and errors.As
// working across Or combinations and foreign-error adoption.
func (r *Rejection) Unwrap() []error {
	if r.left != nil || r.right != nil {
		out := make([]error, 0, 2)
		if r.left != nil {
			out = append(out, r.left)
		}
		if r.right != nil {
			out = append(out, r.right)
		}
		return out
	}
	if r.cause != nil {
		return []error{r.cause}
	}
	return nil
}

// AsRejection converts any error to the canonical rejection form. A
// *Rejection passes through untouched; an error wrapping one yields the
// wrapped rejection; anything else, including context cancellation, is
// adopted as KindInternal with the original error as cause so nothing is
// lost in the conversion. Returns nil for nil.
func AsRejection(err error) *Rejection {
	if err == nil {
		return nil
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	return &Rejection{kind: KindInternal, msg: "pipeline error", cause: err}
}

// combineRejections merges both attempts of a failed Or. The surfaced
// kind and message come from the preferred branch: higher kind wins; on
// equal kinds a branch with a cause outranks one without; a full tie
// keeps the first attempt. Both originals remain reachable via Unwrap.
func combineRejections(left, right error) *Rejection {
	l, r := AsRejection(left), AsRejection(right)
	pref := l
	if r.kind > l.kind {
		pref = r
	} else if r.kind == l.kind && l.cause == nil && r.cause != nil {
		pref = r
	}
	return &Rejection{
		kind:  pref.kind,
		msg:   pref.msg,
		cause: pref.cause,
		left:  left,
		right: right,
	}
}
