package sieve_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/zoobzio/sieve"
)

func echoHandler(conn *websocket.Conn) {
	defer conn.Close()
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(mt, msg); err != nil {
			return
		}
	}
}

func TestWs_EchoRoundTrip(t *testing.T) {
	metrics := &countingMetrics{}
	pipeline := sieve.Path("ws").And(sieve.Ws(echoHandler))
	ts := httptest.NewServer(sieve.NewServer(pipeline.Boxed()).Metrics(metrics))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		resp.Body.Close()
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	mt, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if mt != websocket.TextMessage || string(msg) != "ping" {
		t.Errorf("expected echoed ping, got type %d message %q", mt, string(msg))
	}

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if metrics.upgrades != 1 {
		t.Errorf("expected 1 upgrade callback, got %d", metrics.upgrades)
	}
}

func TestWs_PlainRequestRejected(t *testing.T) {
	pipeline := sieve.Path("ws").And(sieve.Ws(echoHandler))
	ts := httptest.NewServer(sieve.NewServer(pipeline.Boxed()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ws")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 for plain request, got %d", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Error.Kind != "not_matched" {
		t.Errorf("expected kind not_matched, got %q", env.Error.Kind)
	}
}

func TestWs_HandshakeFallsToHTTPBranch(t *testing.T) {
	live := sieve.Path("live").And(
		sieve.Ws(echoHandler).Or(sieve.Get().Map(func() sieve.Reply {
			return sieve.Text("use a websocket client")
		})),
	)
	ts := httptest.NewServer(sieve.NewServer(live.Boxed()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/live")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected HTTP fallback to answer 200, got %d", resp.StatusCode)
	}
}

func TestWs_SyntheticRouteHeaderDetection(t *testing.T) {
	ctx := context.Background()
	filter := sieve.Ws(echoHandler)

	rt := sieve.NewRoute("GET", "/live").
		Header("Connection", "Upgrade").
		Header("Upgrade", "websocket")
	tup, err := filter.Boxed().Run(ctx, rt)
	if err != nil {
		t.Fatalf("expected handshake headers to match, got %v", err)
	}

	// Without a connection to take over, the pending upgrade renders as
	// an upgrade-required response.
	rendered := sieve.Respond(tup)
	if rendered.Status != http.StatusUpgradeRequired {
		t.Errorf("expected status 426, got %d", rendered.Status)
	}
	if got := rendered.Header.Get("Upgrade"); got != "websocket" {
		t.Errorf("expected Upgrade header, got %q", got)
	}
	if string(rendered.Body) != "upgrade required" {
		t.Errorf("expected upgrade required body, got %q", string(rendered.Body))
	}

	plain := sieve.NewRoute("GET", "/live")
	if _, err := filter.Boxed().Run(ctx, plain); err == nil {
		t.Error("expected plain synthetic route to reject")
	}
}
