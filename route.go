package sieve

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBodyLimit is the request body ceiling applied when none is
// configured. Override per route with BodyLimit or guard a pipeline
// explicitly with ContentLengthLimit.
const DefaultBodyLimit int64 = 16 << 20

// errBodyTooLarge marks a body read aborted by the limit; body leaves
// convert it to a KindOversize rejection.
var errBodyTooLarge = errors.New("request body exceeds limit")

// Route is the request cursor a pipeline evaluates against: the method,
// the decoded path segments with a cursor marking how far matching has
// advanced, the headers, the query, and the body. It is transport
// independent; FromRequest adapts an incoming http.Request and NewRoute
// builds one directly for tests and embedding.
//
// Path leaves advance the cursor as they match. Or rewinds it between
// branches via Checkpoint and Restore; the checkpoint covers cursor
// position only, since everything else on the Route is read-only during
// evaluation. The body is read at most once and memoized, so alternative
// branches observe the same bytes.
//
// A Route belongs to exactly one evaluation at a time and is not safe
// for concurrent use.
type Route struct {
	method string
	path   string
	segs   []string
	cursor int

	header   http.Header
	rawQuery string
	query    url.Values

	body      io.Reader
	bodyBytes []byte
	bodyErr   error
	bodyRead  bool
	bodyLimit int64
	length    int64

	remote  string
	request *http.Request
}

// NewRoute builds a Route from a method and a request target such as
// "/users/7?page=2". Panics if the target does not parse; route targets
// are fixed at the call site, so a malformed one is a programming error.
func NewRoute(method, target string) *Route {
	u, err := url.Parse(target)
	if err != nil {
		panicf("NewRoute: bad target %q: %v", target, err)
	}
	return &Route{
		method:    strings.ToUpper(method),
		path:      u.EscapedPath(),
		segs:      splitSegments(u.EscapedPath()),
		header:    make(http.Header),
		rawQuery:  u.RawQuery,
		bodyLimit: DefaultBodyLimit,
		length:    -1,
	}
}

// FromRequest adapts an incoming request. The Route borrows the
// request's header and body; it does not copy them.
func FromRequest(r *http.Request) *Route {
	return &Route{
		method:    r.Method,
		path:      r.URL.EscapedPath(),
		segs:      splitSegments(r.URL.EscapedPath()),
		header:    r.Header,
		rawQuery:  r.URL.RawQuery,
		body:      r.Body,
		bodyLimit: DefaultBodyLimit,
		length:    r.ContentLength,
		remote:    r.RemoteAddr,
		request:   r,
	}
}

// splitSegments decodes an escaped path into its segments. Empty
// segments are dropped, so trailing and doubled slashes do not produce
// phantom segments.
func splitSegments(escaped string) []string {
	parts := strings.Split(escaped, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if dec, err := url.PathUnescape(p); err == nil {
			p = dec
		}
		segs = append(segs, p)
	}
	return segs
}

// -----------------------------------------------------------------------------
// Chainable Construction
// -----------------------------------------------------------------------------

// Header sets a header value, replacing existing values for the key.
func (rt *Route) Header(key, value string) *Route {
	rt.header.Set(key, value)
	return rt
}

// Body sets the body reader.
func (rt *Route) Body(r io.Reader) *Route {
	rt.body = r
	rt.length = -1
	return rt
}

// BodyBytes sets the body from a byte slice and records its length.
func (rt *Route) BodyBytes(b []byte) *Route {
	rt.body = bytes.NewReader(b)
	rt.length = int64(len(b))
	return rt
}

// BodyLimit sets the maximum number of body bytes ReadBody will accept.
// Zero or negative means unlimited.
func (rt *Route) BodyLimit(n int64) *Route {
	rt.bodyLimit = n
	return rt
}

// Remote sets the remote address.
func (rt *Route) Remote(addr string) *Route {
	rt.remote = addr
	return rt
}

// -----------------------------------------------------------------------------
// Cursor
// -----------------------------------------------------------------------------

// Checkpoint captures the cursor position for a later Restore.
type Checkpoint struct {
	cursor int
}

// Checkpoint returns the current cursor position.
func (rt *Route) Checkpoint() Checkpoint {
	return Checkpoint{cursor: rt.cursor}
}

// Restore rewinds the cursor to a previously captured position.
func (rt *Route) Restore(cp Checkpoint) {
	rt.cursor = cp.cursor
}

// Peek returns the segment under the cursor without consuming it, and
// false when the path is depleted.
func (rt *Route) Peek() (string, bool) {
	if rt.cursor >= len(rt.segs) {
		return "", false
	}
	return rt.segs[rt.cursor], true
}

// Advance consumes the segment under the cursor.
func (rt *Route) Advance() {
	if rt.cursor < len(rt.segs) {
		rt.cursor++
	}
}

// Depleted reports whether every segment has been consumed.
func (rt *Route) Depleted() bool {
	return rt.cursor >= len(rt.segs)
}

// Remaining returns the unconsumed segments. The returned slice aliases
// the Route and must not be modified.
func (rt *Route) Remaining() []string {
	return rt.segs[rt.cursor:]
}

// -----------------------------------------------------------------------------
// Request Data
// -----------------------------------------------------------------------------

// Method returns the request method.
func (rt *Route) Method() string {
	return rt.method
}

// Path returns the escaped request path as received.
func (rt *Route) Path() string {
	return rt.path
}

// HeaderValue returns the first value for the header and whether it was
// present.
func (rt *Route) HeaderValue(key string) (string, bool) {
	vals := rt.header.Values(key)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Headers returns the underlying header map.
func (rt *Route) Headers() http.Header {
	return rt.header
}

// QueryValue returns the first value for the query parameter and
// whether it was present.
func (rt *Route) QueryValue(key string) (string, bool) {
	q := rt.Queries()
	vals, ok := q[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Queries returns the parsed query values. Parsing is lazy and
// memoized; unparseable pairs are dropped, matching net/url behavior.
func (rt *Route) Queries() url.Values {
	if rt.query == nil {
		q, err := url.ParseQuery(rt.rawQuery)
		if err != nil && q == nil {
			q = make(url.Values)
		}
		rt.query = q
	}
	return rt.query
}

// ContentLength returns the declared body length, or -1 when unknown.
func (rt *Route) ContentLength() int64 {
	return rt.length
}

// ContentType returns the Content-Type header value.
func (rt *Route) ContentType() string {
	v, _ := rt.HeaderValue("Content-Type")
	return v
}

// RemoteAddr returns the remote address, when known.
func (rt *Route) RemoteAddr() string {
	return rt.remote
}

// Request returns the original http.Request when the Route was built by
// FromRequest, or nil for synthetic routes. The websocket leaf uses it
// to complete the upgrade handshake.
func (rt *Route) Request() *http.Request {
	return rt.request
}

// ReadBody reads and memoizes the body, honoring the configured limit.
// Subsequent calls return the same bytes or the same error, so
// alternative branches behind an Or see identical body state. Exceeding
// the limit yields an error the body leaves surface as KindOversize.
func (rt *Route) ReadBody() ([]byte, error) {
	if rt.bodyRead {
		return rt.bodyBytes, rt.bodyErr
	}
	rt.bodyRead = true
	if rt.body == nil {
		return nil, nil
	}
	r := rt.body
	if rt.bodyLimit > 0 {
		r = io.LimitReader(r, rt.bodyLimit+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		rt.bodyErr = fmt.Errorf("reading body: %w", err)
		return nil, rt.bodyErr
	}
	if rt.bodyLimit > 0 && int64(len(b)) > rt.bodyLimit {
		rt.bodyErr = errBodyTooLarge
		return nil, rt.bodyErr
	}
	rt.bodyBytes = b
	return b, nil
}
