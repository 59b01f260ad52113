package sieve

import (
	"encoding/json"
	"net/http"
)

// Response is the materialized wire-level answer: status, headers, and
// body. The server writes one per request after running it through the
// response pipeline, so post-processing stages receive a *Response they
// can reshape freely.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// SetHeader sets a header value and returns the response, creating the
// header map on first use.
func (r *Response) SetHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// Reply is anything that can materialize itself into a Response. The
// terminal value of a pipeline usually implements it; values that do
// not are rendered as JSON.
type Reply interface {
	Render() *Response
}

// Text replies with a plain-text body and status 200.
func Text(s string) Reply {
	return textReply{body: s, contentType: "text/plain; charset=utf-8"}
}

// HTML replies with an HTML body and status 200.
func HTML(s string) Reply {
	return textReply{body: s, contentType: "text/html; charset=utf-8"}
}

type textReply struct {
	body        string
	contentType string
}

func (t textReply) Render() *Response {
	resp := &Response{Status: http.StatusOK, Body: []byte(t.body)}
	return resp.SetHeader("Content-Type", t.contentType)
}

// JSON replies with the value marshaled as JSON and status 200. A value
// that fails to marshal renders as a 500 with an error envelope.
func JSON(v any) Reply {
	return Encoded(v, JSONCodec{})
}

// Encoded replies with the value marshaled by the codec and status 200,
// stamped with the codec's content type.
func Encoded(v any, codec Codec) Reply {
	return encodedReply{v: v, codec: codec}
}

type encodedReply struct {
	v     any
	codec Codec
}

func (e encodedReply) Render() *Response {
	b, err := e.codec.Marshal(e.v)
	if err != nil {
		return RespondError(Reject(KindInternal, "response encoding failed").WithCause(err))
	}
	resp := &Response{Status: http.StatusOK, Body: b}
	return resp.SetHeader("Content-Type", e.codec.ContentType())
}

// Status replies with a bare status code and no body.
func Status(code int) Reply {
	return statusReply{code: code}
}

type statusReply struct {
	code int
}

func (s statusReply) Render() *Response {
	return &Response{Status: s.code}
}

// WithStatus overrides the status of another reply.
func WithStatus(r Reply, code int) Reply {
	return withStatus{inner: r, code: code}
}

type withStatus struct {
	inner Reply
	code  int
}

func (w withStatus) Render() *Response {
	resp := w.inner.Render()
	resp.Status = w.code
	return resp
}

// WithHeader adds a header to another reply.
func WithHeader(r Reply, key, value string) Reply {
	return withHeader{inner: r, key: key, value: value}
}

type withHeader struct {
	inner Reply
	key   string
	value string
}

func (w withHeader) Render() *Response {
	return w.inner.Render().SetHeader(w.key, w.value)
}

// Respond materializes a terminal extraction into a Response. Either
// tags from Or and Recover are unwrapped first; then a single Reply,
// *Response, string, byte slice, or Unit renders directly, and any
// other value is marshaled as JSON. A multi-value extraction renders as
// a JSON array of its elements; pipelines normally Map down to a single
// reply before reaching the driver.
func Respond(t Tuple) *Response {
	t = unwrapEithers(t)
	switch len(t) {
	case 0:
		return &Response{Status: http.StatusOK}
	case 1:
		switch v := t[0].(type) {
		case Reply:
			return v.Render()
		case *Response:
			return v
		case Unit:
			return &Response{Status: http.StatusOK}
		case string:
			return Text(v).Render()
		case []byte:
			resp := &Response{Status: http.StatusOK, Body: v}
			return resp.SetHeader("Content-Type", "application/octet-stream")
		default:
			return JSON(v).Render()
		}
	default:
		return JSON([]any(t)).Render()
	}
}

// unwrapEithers strips nested Either tags so the winning branch's value
// renders the same whether or not it went through an Or.
func unwrapEithers(t Tuple) Tuple {
	for len(t) == 1 {
		e, ok := t[0].(Either)
		if !ok {
			return t
		}
		t = e.Values()
	}
	return t
}

// RespondError materializes a pipeline failure into its error envelope,
// with the status derived from the rejection's kind. Internal failures
// render a fixed message so causes never leak to clients.
func RespondError(err error) *Response {
	rej := AsRejection(err)
	if rej == nil {
		rej = Reject(KindInternal, "nil error")
	}
	msg := rej.Error()
	if rej.Kind() == KindInternal {
		msg = "internal error"
	}
	body, _ := json.Marshal(errorEnvelope{Error: errorBody{
		Kind:    rej.Kind().String(),
		Message: msg,
	}})
	resp := &Response{Status: rej.Kind().HTTPStatus(), Body: body}
	return resp.SetHeader("Content-Type", "application/json")
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
