package sieve

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestText_Renders(t *testing.T) {
	resp := Text("hello").Render()

	if resp.Status != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.Status)
	}
	if string(resp.Body) != "hello" {
		t.Errorf("expected hello, got %q", resp.Body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestHTML_Renders(t *testing.T) {
	resp := HTML("<h1>hi</h1>").Render()

	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestJSON_Renders(t *testing.T) {
	resp := JSON(map[string]int{"n": 7}).Render()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	var got map[string]int
	if err := json.Unmarshal(resp.Body, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got["n"] != 7 {
		t.Errorf("expected n=7, got %v", got)
	}
}

func TestEncoded_UnmarshalableValueRendersInternal(t *testing.T) {
	resp := Encoded(func() {}, JSONCodec{}).Render()

	if resp.Status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.Status)
	}
}

func TestStatus_Renders(t *testing.T) {
	resp := Status(http.StatusNoContent).Render()

	if resp.Status != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.Status)
	}
	if len(resp.Body) != 0 {
		t.Errorf("expected empty body, got %q", resp.Body)
	}
}

func TestWithStatus_OverridesInner(t *testing.T) {
	resp := WithStatus(Text("created"), http.StatusCreated).Render()

	if resp.Status != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.Status)
	}
	if string(resp.Body) != "created" {
		t.Errorf("expected created, got %q", resp.Body)
	}
}

func TestWithHeader_AddsHeader(t *testing.T) {
	resp := WithHeader(Text("ok"), "Cache-Control", "no-store").Render()

	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}
}

func TestResponse_SetHeaderCreatesMap(t *testing.T) {
	resp := &Response{Status: 200}
	resp.SetHeader("X-A", "1").SetHeader("X-B", "2")

	if resp.Header.Get("X-A") != "1" || resp.Header.Get("X-B") != "2" {
		t.Errorf("unexpected headers %v", resp.Header)
	}
}

func TestRespond_EmptyTuple(t *testing.T) {
	resp := Respond(nil)

	if resp.Status != http.StatusOK || len(resp.Body) != 0 {
		t.Errorf("expected empty 200, got %d %q", resp.Status, resp.Body)
	}
}

func TestRespond_SingleValues(t *testing.T) {
	t.Run("reply renders itself", func(t *testing.T) {
		resp := Respond(One(Status(http.StatusAccepted)))
		if resp.Status != http.StatusAccepted {
			t.Errorf("expected 202, got %d", resp.Status)
		}
	})

	t.Run("response passes through", func(t *testing.T) {
		r := &Response{Status: 418}
		if got := Respond(One(r)); got != r {
			t.Error("expected the same response instance")
		}
	})

	t.Run("unit renders empty", func(t *testing.T) {
		resp := Respond(One(Unit{}))
		if resp.Status != http.StatusOK || len(resp.Body) != 0 {
			t.Errorf("expected empty 200, got %d %q", resp.Status, resp.Body)
		}
	})

	t.Run("string renders as text", func(t *testing.T) {
		resp := Respond(One("plain"))
		if string(resp.Body) != "plain" {
			t.Errorf("expected plain, got %q", resp.Body)
		}
	})

	t.Run("bytes render as octet stream", func(t *testing.T) {
		resp := Respond(One([]byte{0x1, 0x2}))
		if ct := resp.Header.Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("unexpected content type %q", ct)
		}
	})

	t.Run("other values render as json", func(t *testing.T) {
		resp := Respond(One(struct {
			N int `json:"n"`
		}{N: 3}))
		if string(resp.Body) != `{"n":3}` {
			t.Errorf("expected {\"n\":3}, got %q", resp.Body)
		}
	})
}

func TestRespond_UnwrapsEitherTags(t *testing.T) {
	tup := One(Left(One(Right(One("inner")))))

	resp := Respond(tup)
	if string(resp.Body) != "inner" {
		t.Errorf("expected inner, got %q", resp.Body)
	}
}

func TestRespond_MultiValueRendersArray(t *testing.T) {
	resp := Respond(Values(1, "two"))

	var got []any
	if err := json.Unmarshal(resp.Body, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(got) != 2 || got[1] != "two" {
		t.Errorf("expected [1, two], got %v", got)
	}
}

func TestRespondError_Envelope(t *testing.T) {
	resp := RespondError(Reject(KindMissing, "missing query parameter"))

	if resp.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.Status)
	}
	var got errorEnvelope
	if err := json.Unmarshal(resp.Body, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	want := errorEnvelope{Error: errorBody{
		Kind:    "missing",
		Message: "missing query parameter",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
}

func TestRespondError_InternalMessageSanitized(t *testing.T) {
	resp := RespondError(Reject(KindInternal, "pgx: connection string secrets"))

	var got errorEnvelope
	if err := json.Unmarshal(resp.Body, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Error.Message != "internal error" {
		t.Errorf("expected sanitized message, got %q", got.Error.Message)
	}
}

func TestRespondError_ForeignError(t *testing.T) {
	resp := RespondError(errors.New("boom"))

	if resp.Status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.Status)
	}
}

func TestRespondError_StatusFollowsKind(t *testing.T) {
	cases := map[Kind]int{
		KindNotMatched:       404,
		KindMethodNotAllowed: 405,
		KindUnsupported:      415,
		KindOversize:         413,
	}
	for kind, want := range cases {
		resp := RespondError(Reject(kind, "x"))
		if resp.Status != want {
			t.Errorf("%s: expected %d, got %d", kind, want, resp.Status)
		}
	}
}
