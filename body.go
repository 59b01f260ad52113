package sieve

import (
	"context"
	"errors"
	"strings"
)

// Validator is the optional hook decoded body types implement to
// validate themselves after decoding. This gives full control over
// validation logic; for simple cases, delegate to a validation library
// within your Validate method.
type Validator interface {
	Validate() error
}

// DecodedBody extracts the request body decoded as T via the codec.
// The filter checks the declared Content-Type against the codec
// (mismatch rejects as KindUnsupported; an absent Content-Type is
// accepted), reads the body within the Route's limit (excess rejects
// as KindOversize), decodes (failure rejects as KindInvalid), and,
// when T or *T implements Validator, validates (failure rejects as
// KindInvalid with the cause attached).
//
// The body is read once and memoized on the Route, so alternative
// branches decode the same bytes.
func DecodedBody[T any](codec Codec) Filter {
	return Extract(func(_ context.Context, rt *Route) (T, error) {
		var zero T
		if ct, ok := rt.HeaderValue("Content-Type"); ok && !mediaTypeMatches(ct, codec.ContentType()) {
			return zero, Rejectf(KindUnsupported, "unsupported content type %q, want %s", ct, codec.ContentType())
		}
		raw, err := rt.ReadBody()
		if err != nil {
			if errors.Is(err, errBodyTooLarge) {
				return zero, Reject(KindOversize, "request body too large").WithCause(err)
			}
			return zero, Reject(KindInvalid, "could not read request body").WithCause(err)
		}
		var v T
		if err := codec.Unmarshal(raw, &v); err != nil {
			return zero, Rejectf(KindInvalid, "malformed %s body", codec.ContentType()).WithCause(err)
		}
		if err := validate(&v); err != nil {
			return zero, Reject(KindInvalid, "body validation failed").WithCause(err)
		}
		return v, nil
	})
}

// JSONBody extracts the request body decoded as JSON.
func JSONBody[T any]() Filter {
	return DecodedBody[T](JSONCodec{})
}

// YAMLBody extracts the request body decoded as YAML.
func YAMLBody[T any]() Filter {
	return DecodedBody[T](YAMLCodec{})
}

// ContentLengthLimit matches only when the declared Content-Length is
// within the limit, rejecting excess as KindOversize before any body
// bytes are read. Requests without a declared length pass; ReadBody's
// limit still protects the actual read.
func ContentLengthLimit(limit int64) Filter {
	return Check(func(_ context.Context, rt *Route) error {
		if n := rt.ContentLength(); n > limit {
			return Rejectf(KindOversize, "content length %d exceeds limit %d", n, limit)
		}
		return nil
	})
}

// validate runs the Validator hook when the decoded value's pointer
// type implements it, which covers value receivers too.
func validate(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	return nil
}

// mediaTypeMatches compares the media type of a Content-Type header
// against the expected type, ignoring parameters like charset.
func mediaTypeMatches(header, want string) bool {
	mt := header
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.EqualFold(strings.TrimSpace(mt), want)
}
