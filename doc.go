/*
Package sieve provides composable request filters: small matchers and
extractors that chain into complete routing and handling pipelines.

A Filter inspects a request and either extracts a tuple of values or
rejects with a ranked reason. Filters compose with combinators, and the
composed pipeline stays a plain value until a server (or a test) runs
it. Composition mistakes such as mismatched shapes panic at build time,
the same way a malformed regexp does; runtime problems become rejections
that map onto HTTP status codes.

# Basic Usage

Build a pipeline from primitive filters and combinators:

	hello := sieve.Get().
	    And(sieve.Path("/hello")).
	    And(sieve.Param[string]()).
	    And(sieve.PathEnd()).
	    Map(func(name string) sieve.Reply {
	        return sieve.Text("hello, " + name)
	    })

Serve it:

	srv := sieve.NewServer(hello.Boxed()).Addr(":8080")
	if err := srv.Start(ctx); err != nil {
	    log.Fatal(err)
	}

# Extraction

Primitive filters pull typed values out of the request:

	sieve.Param[int64]()          // next path segment as int64
	sieve.Header[string]("host")  // header value
	sieve.Query[int]("page")      // query parameter
	sieve.JSONBody[CreateUser]()  // decoded request body

Each filter has a fixed extraction shape. And concatenates shapes, so
downstream callbacks receive every extracted value as a separate typed
argument.

# Combinators

Sequence with And, route with Or, transform with Map and AndThen:

	user := sieve.Path("/users").
	    And(sieve.Param[int64]()).
	    AndThen(func(ctx context.Context, id int64) (User, error) {
	        return store.Lookup(ctx, id)
	    })

	api := users.Or(posts).Or(health)

Or runs its second branch only when the first rejects, rewinding any
path segments the failed branch consumed. Recover makes a pipeline
total by converting rejections into values, and OrElse retries the
rejection with a fallback extraction of the same shape.

# Rejections

A failed filter produces a Rejection with a Kind that ranks how
specific the failure was: a wrong method outranks an unmatched path, a
malformed body outranks a missing header. When both branches of an Or
reject, the more specific rejection wins, so a request to a known path
with the wrong method answers 405 rather than 404. Kinds map onto
status codes via Kind.HTTPStatus, and RespondError renders the JSON
error envelope.

# Decoration

Wrappers decorate filters without touching their shape. Log is a
built-in wrapper that times the wrapped filter and records matches and
rejections:

	users = users.With(sieve.Log("users").Logger(logger))

Custom cross-cutting behavior implements Wrapper or uses WrapFunc.

# Resilience

The server hardens the evaluation path with chainable capabilities:

	srv := sieve.NewServer(api.Boxed()).
	    Timeout(2 * time.Second).
	    Retry(3).
	    Breaker(5, 30*time.Second).
	    Limit(100, 10)

Ordinary rejections are normal outcomes: they are never retried and
cannot trip the breaker. Only pipeline faults engage the resilience
layer, and OnFault observes exactly those.

The package is built on top of:
  - pipz: for the evaluation chain and response pipelines
  - capitan: for signal-based observability hooks
  - clockz: for testable time
*/
package sieve
