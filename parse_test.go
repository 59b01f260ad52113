package sieve

import (
	"strings"
	"testing"
)

// ticket is a parseable domain type for the TextUnmarshaler fallback.
type ticket struct {
	project string
	number  string
}

func (tk *ticket) UnmarshalText(b []byte) error {
	project, number, ok := strings.Cut(string(b), "-")
	if !ok {
		return Reject(KindInvalid, "ticket wants PROJECT-NUMBER form")
	}
	tk.project = project
	tk.number = number
	return nil
}

func TestParserFor_Builtins(t *testing.T) {
	if v, err := parserFor[string]()("plain"); err != nil || v != "plain" {
		t.Errorf("expected plain, got %q, %v", v, err)
	}
	if v, err := parserFor[bool]()("true"); err != nil || !v {
		t.Errorf("expected true, got %v, %v", v, err)
	}
	if v, err := parserFor[int]()("-42"); err != nil || v != -42 {
		t.Errorf("expected -42, got %d, %v", v, err)
	}
	if v, err := parserFor[uint16]()("65535"); err != nil || v != 65535 {
		t.Errorf("expected 65535, got %d, %v", v, err)
	}
	if v, err := parserFor[float64]()("2.5"); err != nil || v != 2.5 {
		t.Errorf("expected 2.5, got %f, %v", v, err)
	}
}

func TestParserFor_RangeErrors(t *testing.T) {
	if _, err := parserFor[int8]()("300"); err == nil {
		t.Error("expected range error for int8")
	}
	if _, err := parserFor[uint]()("-1"); err == nil {
		t.Error("expected error for negative uint")
	}
}

func TestParserFor_TextUnmarshalerFallback(t *testing.T) {
	v, err := parserFor[ticket]()("INFRA-102")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v.project != "INFRA" || v.number != "102" {
		t.Errorf("unexpected ticket %+v", v)
	}

	if _, err := parserFor[ticket]()("malformed"); err == nil {
		t.Error("expected error from UnmarshalText")
	}
}

func TestParserFor_UnsupportedTypePanics(t *testing.T) {
	expectPanic(t, func() {
		parserFor[struct{ X int }]()
	})
}
