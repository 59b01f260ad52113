package sieve

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type account struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var errAccountNotFound = errors.New("account not found")

func lookupAccount(_ context.Context, id int64) (account, error) {
	if id == 404 {
		return account{}, errAccountNotFound
	}
	return account{ID: id, Name: fmt.Sprintf("account-%d", id)}, nil
}

func TestAndThen_ChainsLookup(t *testing.T) {
	ctx := context.Background()
	f := Path("accounts").And(Param[int64]()).AndThen(lookupAccount)

	tup, err := f.Boxed().Run(ctx, NewRoute("GET", "/accounts/7"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	acct, ok := tup[0].(account)
	if !ok {
		t.Fatalf("expected account, got %T", tup[0])
	}
	if acct.ID != 7 || acct.Name != "account-7" {
		t.Errorf("unexpected account %+v", acct)
	}
}

func TestAndThen_CallbackErrorPropagates(t *testing.T) {
	ctx := context.Background()
	f := Path("accounts").And(Param[int64]()).AndThen(lookupAccount)

	_, err := f.Boxed().Run(ctx, NewRoute("GET", "/accounts/404"))
	if !errors.Is(err, errAccountNotFound) {
		t.Errorf("expected account not found, got %v", err)
	}
	if AsRejection(err).Kind() != KindInternal {
		t.Errorf("expected foreign error adopted as internal, got %s", AsRejection(err).Kind())
	}
}

func TestAndThen_RejectionKindPreserved(t *testing.T) {
	ctx := context.Background()
	f := Param[int]().AndThen(func(_ context.Context, n int) (int, error) {
		if n < 0 {
			return 0, Reject(KindInvalid, "negative id")
		}
		return n, nil
	})

	_, err := f.Boxed().Run(ctx, NewRoute("GET", "/-3"))
	if AsRejection(err).Kind() != KindInvalid {
		t.Errorf("expected invalid, got %v", err)
	}
}

func TestAndThen_ReceivesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "tenant-1")

	var seen string
	f := Path("x").AndThen(func(ctx context.Context) (Unit, error) {
		seen, _ = ctx.Value(ctxKey{}).(string)
		return Unit{}, nil
	})

	if _, err := f.Boxed().Run(ctx, NewRoute("GET", "/x")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if seen != "tenant-1" {
		t.Errorf("expected tenant-1 from context, got %q", seen)
	}
}

func TestAndThen_SkippedOnFailure(t *testing.T) {
	ctx := context.Background()
	invoked := false
	f := Path("users").AndThen(func(context.Context) (Unit, error) {
		invoked = true
		return Unit{}, nil
	})

	if _, err := f.Boxed().Run(ctx, NewRoute("GET", "/posts")); err == nil {
		t.Fatal("expected rejection")
	}
	if invoked {
		t.Error("expected callback to be skipped on failure")
	}
}

func TestAndThen_MissingContextPanics(t *testing.T) {
	expectPanic(t, func() {
		Param[int]().AndThen(func(n int) (int, error) { return n, nil })
	})
}

func TestAndThen_WrongReturnsPanics(t *testing.T) {
	expectPanic(t, func() {
		Param[int]().AndThen(func(_ context.Context, n int) int { return n })
	})
}

func TestAndThen_ArityMismatchPanics(t *testing.T) {
	expectPanic(t, func() {
		Path("x").AndThen(func(_ context.Context, n int) (int, error) { return n, nil })
	})
}
