package sieve

import (
	"context"
	"testing"
)

func TestUnify_CollapsesLeftBranch(t *testing.T) {
	ctx := context.Background()
	f := Path("a").And(Param[string]()).
		Or(Path("b").And(Param[string]())).
		Unify()

	tup, err := f.Boxed().Run(ctx, NewRoute("GET", "/a/one"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tup.Arity() != 1 || tup[0] != "one" {
		t.Errorf("expected (one), got %v", tup)
	}
}

func TestUnify_CollapsesRightBranch(t *testing.T) {
	ctx := context.Background()
	f := Path("a").And(Param[string]()).
		Or(Path("b").And(Param[string]())).
		Unify()

	tup, err := f.Boxed().Run(ctx, NewRoute("GET", "/b/two"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tup[0] != "two" {
		t.Errorf("expected (two), got %v", tup)
	}
}

func TestUnify_ResultComposesDownstream(t *testing.T) {
	ctx := context.Background()
	f := Header[string]("x-real-ip").
		Or(Header[string]("x-forwarded-for")).
		Unify().
		Map(func(ip string) string { return "ip=" + ip })

	rt := NewRoute("GET", "/").Header("x-real-ip", "127.0.0.1")
	tup, err := f.Boxed().Run(ctx, rt)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tup[0] != "ip=127.0.0.1" {
		t.Errorf("expected ip=127.0.0.1, got %v", tup[0])
	}
}

func TestUnify_FailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	f := Header[string]("x-a").Or(Header[string]("x-b")).Unify()

	_, err := f.Boxed().Run(ctx, NewRoute("GET", "/"))
	if AsRejection(err).Kind() != KindMissing {
		t.Errorf("expected missing, got %v", err)
	}
}

func TestUnify_NonEitherPanics(t *testing.T) {
	expectPanic(t, func() {
		Param[string]().Unify()
	})
}

func TestUnify_ZeroArityPanics(t *testing.T) {
	expectPanic(t, func() {
		Path("x").Unify()
	})
}

func TestUnify_IncongruentBranchesPanics(t *testing.T) {
	expectPanic(t, func() {
		Param[int]().Or(Param[string]()).Unify()
	})
}

func TestUnify_DynamicBranchTolerated(t *testing.T) {
	ctx := context.Background()

	// A boxed branch erases its shape; Unify defers the check to run
	// time and adopts the static branch's shape for composition.
	boxed := Param[string]().Boxed().Filter()
	f := boxed.Or(Param[string]()).Unify().
		Map(func(s string) string { return s })

	tup, err := f.Boxed().Run(ctx, NewRoute("GET", "/dyn"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tup[0] != "dyn" {
		t.Errorf("expected dyn, got %v", tup[0])
	}
}
