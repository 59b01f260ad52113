package sieve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
	"golang.org/x/sync/errgroup"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// DefaultShutdownGrace bounds how long Start waits for in-flight
// requests to drain after its context is canceled.
const DefaultShutdownGrace = 10 * time.Second

// Server drives a boxed pipeline over HTTP. Each request becomes a
// Route, runs through the pipeline, and the terminal tuple (or the
// rejection) materializes into the wire response. The zero value is
// not usable; construct with NewServer.
//
//	hello := sieve.Get().
//		And(sieve.Path("/hello")).
//		And(sieve.Param[string]()).
//		And(sieve.PathEnd()).
//		Map(func(name string) sieve.Reply {
//			return sieve.Text("hello, " + name)
//		})
//
//	srv := sieve.NewServer(hello.Boxed()).
//		Addr(":9090").
//		RejectionHistory(32)
//	if err := srv.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Server implements http.Handler, so it can also be mounted inside an
// existing mux instead of owning the listener.
type Server struct {
	filter   BoxedFilter
	addr     string
	logger   zerolog.Logger
	clock    clockz.Clock
	metrics  MetricsProvider
	exec     pipz.Chainable[*Evaluation]
	pipeline pipz.Chainable[*Response]
	rejects  *rejectRing
	grace    time.Duration

	mu      sync.Mutex
	httpSrv *http.Server
	started bool
}

// Evaluation carries one request through the evaluation chain: the
// route under evaluation plus the outcome slots the terminal stage
// fills in. Resilience capabilities (Timeout, Retry, Breaker, Limit)
// wrap the chain, and fault observers installed with OnFault receive
// the carrier inside the pipz error describing a fault.
type Evaluation struct {
	rt  *Route
	cp  Checkpoint
	out Tuple
	rej *Rejection
}

// Route returns the route under evaluation.
func (e *Evaluation) Route() *Route {
	return e.rt
}

// NewServer creates a server around the pipeline root. Configuration
// methods chain off the returned server and must be called before
// Start or ServeHTTP.
func NewServer(filter BoxedFilter) *Server {
	s := &Server{
		filter:  filter,
		addr:    DefaultAddr,
		logger:  zerolog.Nop(),
		clock:   clockz.RealClock,
		grace:   DefaultShutdownGrace,
		rejects: newRejectRing(0),
	}
	s.exec = pipz.Effect("evaluate", s.evaluate)
	return s
}

// evaluate is the terminal stage of the evaluation chain. Ordinary
// rejections are recorded on the carrier and return nil so the
// resilience stages observe only pipeline faults: a rejected request
// is a normal outcome, not a failure to retry or to count against a
// breaker.
func (s *Server) evaluate(ctx context.Context, e *Evaluation) error {
	e.rt.Restore(e.cp)
	e.out, e.rej = nil, nil
	t, err := s.filter.Run(ctx, e.rt)
	if err != nil {
		rej := AsRejection(err)
		if rej.Kind() == KindInternal {
			return rej
		}
		e.rej = rej
		return nil
	}
	e.out = t
	return nil
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Addr sets the listen address for Start.
// Default: ":8080".
func (s *Server) Addr(addr string) *Server {
	s.addr = addr
	return s
}

// Logger sets the structured logger for access and error logs.
// Default: a no-op logger.
func (s *Server) Logger(logger zerolog.Logger) *Server {
	s.logger = logger
	return s
}

// Clock sets a custom clock for request timing and shutdown deadlines.
// Use this with clockz.FakeClock for deterministic tests.
func (s *Server) Clock(clock clockz.Clock) *Server {
	s.clock = clock
	return s
}

// Metrics sets a metrics provider for observability integration. The
// provider receives callbacks on completed requests, rejections, and
// websocket upgrades.
func (s *Server) Metrics(provider MetricsProvider) *Server {
	s.metrics = provider
	return s
}

// Pipe installs response post-processing stages. Every response,
// success or rejection, flows through the stages in order before it is
// written. Use pipz.Transform and friends to build stages:
//
//	srv.Pipe(pipz.Transform("server-header",
//		func(_ context.Context, resp *sieve.Response) *sieve.Response {
//			return resp.SetHeader("Server", "sieve")
//		},
//	))
func (s *Server) Pipe(stages ...pipz.Chainable[*Response]) *Server {
	s.pipeline = pipz.NewSequence("response", stages...)
	return s
}

// RejectionHistory sets the number of recent rejections to retain for
// RecentRejections. Use 0 (default) to retain none.
func (s *Server) RejectionHistory(n int) *Server {
	s.rejects = newRejectRing(n)
	return s
}

// Grace sets the shutdown grace period: how long Start waits for
// in-flight requests after its context is canceled.
// Default: 10s.
func (s *Server) Grace(d time.Duration) *Server {
	s.grace = d
	return s
}

// RecentRejections returns the recent rejection history, oldest first.
// Returns nil unless RejectionHistory enabled retention.
func (s *Server) RecentRejections() []*Rejection {
	return s.rejects.all()
}

// -----------------------------------------------------------------------------
// Request Handling
// -----------------------------------------------------------------------------

// ServeHTTP runs one request through the pipeline and writes the
// materialized response.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.clock.Now()
	id := uuid.NewString()
	ctx := r.Context()
	rt := FromRequest(r)

	capitan.Emit(ctx, RequestReceived,
		KeyRequestID.Field(id),
		KeyMethod.Field(r.Method),
		KeyPath.Field(r.URL.Path),
	)

	e := &Evaluation{rt: rt, cp: rt.Checkpoint()}
	_, err := s.exec.Process(ctx, e)

	var rej *Rejection
	if err != nil {
		// A timed-out attempt may still hold the carrier; after a
		// fault only the error is read.
		rej = AsRejection(err)
	} else {
		rej = e.rej
	}
	if rej != nil {
		s.rejects.push(rej)
		capitan.Emit(ctx, RequestRejected,
			KeyRequestID.Field(id),
			KeyKind.Field(rej.Kind().String()),
			KeyError.Field(rej.Error()),
		)
		if s.metrics != nil {
			s.metrics.OnRejection(rej.Kind())
		}
		s.write(w, r, id, RespondError(rej), start)
		return
	}

	if up, ok := pendingUpgrade(e.out); ok {
		s.serveWs(w, r, up, id)
		return
	}

	s.write(w, r, id, Respond(e.out), start)
}

// pendingUpgrade reports whether the terminal tuple is a websocket
// upgrade awaiting completion.
func pendingUpgrade(t Tuple) (*WsUpgrade, bool) {
	t = unwrapEithers(t)
	if len(t) != 1 {
		return nil, false
	}
	up, ok := t[0].(*WsUpgrade)
	return up, ok
}

// serveWs completes the handshake and hands the connection to the
// upgrade's handler. The handler runs on the request goroutine and owns
// the connection from here on.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request, up *WsUpgrade, id string) {
	conn, err := up.upgrade(w, r)
	if err != nil {
		// The upgrader already wrote an HTTP error.
		s.logger.Warn().
			Err(err).
			Str("request_id", id).
			Str("path", r.URL.Path).
			Msg("websocket upgrade failed")
		return
	}
	capitan.Emit(r.Context(), WsUpgraded,
		KeyRequestID.Field(id),
		KeyPath.Field(r.URL.Path),
	)
	if s.metrics != nil {
		s.metrics.OnUpgrade()
	}
	s.logger.Info().
		Str("request_id", id).
		Str("path", r.URL.Path).
		Msg("websocket upgraded")
	up.handler(conn)
}

// write pushes the response through the post-processing pipeline, then
// writes headers, status, and body, and records the access log entry.
func (s *Server) write(w http.ResponseWriter, r *http.Request, id string, resp *Response, start time.Time) {
	ctx := r.Context()

	if s.pipeline != nil {
		processed, err := s.pipeline.Process(ctx, resp)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("request_id", id).
				Msg("response pipeline failed")
			resp = RespondError(Reject(KindInternal, "response pipeline failed").WithCause(err))
		} else {
			resp = processed
		}
	}

	resp.SetHeader("X-Request-Id", id)
	for key, vals := range resp.Header {
		for _, v := range vals {
			w.Header().Add(key, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body) //nolint:errcheck // Client gone mid-write is not actionable
	}

	duration := s.clock.Since(start)
	s.logger.Info().
		Str("request_id", id).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Dur("duration", duration).
		Msg("request")
	capitan.Emit(ctx, RequestCompleted,
		KeyRequestID.Field(id),
		KeyStatus.Field(status),
		KeyDuration.Field(duration),
	)
	if s.metrics != nil {
		s.metrics.OnRequest(r.Method, r.URL.Path, status, duration)
	}
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start listens on the configured address and serves until ctx is
// canceled, then drains in-flight requests within the grace period.
// It blocks for the lifetime of the server and returns nil on a clean
// shutdown.
//
// Start can only be called once. Subsequent calls return an error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("server already started")
	}
	s.started = true
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpSrv = srv
	s.mu.Unlock()

	capitan.Emit(ctx, ServerStarted,
		KeyAddr.Field(s.addr),
	)
	s.logger.Info().Str("addr", s.addr).Msg("server started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := s.clock.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	capitan.Emit(ctx, ServerStopped,
		KeyAddr.Field(s.addr),
	)
	s.logger.Info().Str("addr", s.addr).Msg("server stopped")
	return err
}
