package sieve_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zoobzio/sieve"
)

func TestServer_Timeout_CutsOffSlowEvaluation(t *testing.T) {
	slow := sieve.Path("slow").AndThen(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	ts := httptest.NewServer(sieve.NewServer(slow.Boxed()).Timeout(50 * time.Millisecond))
	defer ts.Close()

	start := time.Now()
	resp, err := http.Get(ts.URL + "/slow")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("expected the deadline to cut evaluation short, took %v", elapsed)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Error.Kind != "internal" {
		t.Errorf("expected kind internal, got %q", env.Error.Kind)
	}
}

func TestServer_Timeout_FastEvaluationUnaffected(t *testing.T) {
	quick := sieve.Path("quick").Map(func() string { return "done" })
	ts := httptest.NewServer(sieve.NewServer(quick.Boxed()).Timeout(time.Second))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/quick")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}
