package sieve

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// LogWrapper logs every evaluation of the filter it wraps: outcome,
// duration, and rejection kind on failure. Each evaluation also emits
// FilterEvaluated for hook-based observers. The extraction and failure
// pass through untouched.
type LogWrapper struct {
	name   string
	logger zerolog.Logger
	clock  clockz.Clock
}

// Log creates a logging wrapper under the given name. The default
// logger writes to stderr with timestamps; chain Logger and Clock to
// override.
//
//	users := route.With(sieve.Log("users").Logger(appLogger))
func Log(name string) *LogWrapper {
	return &LogWrapper{
		name:   name,
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
		clock:  clockz.RealClock,
	}
}

// Logger sets the zerolog logger.
func (w *LogWrapper) Logger(l zerolog.Logger) *LogWrapper {
	w.logger = l
	return w
}

// Clock sets a custom clock for durations. Use clockz.FakeClock for
// deterministic timing in tests.
func (w *LogWrapper) Clock(clock clockz.Clock) *LogWrapper {
	w.clock = clock
	return w
}

// Wrap implements Wrapper.
func (w *LogWrapper) Wrap(f Filter) Filter {
	return Filter{&logNode{inner: f.n, w: w}}
}

type logNode struct {
	inner node
	w     *LogWrapper
}

func (n *logNode) shape() extract {
	return n.inner.shape()
}

func (n *logNode) run(ctx context.Context, rt *Route) (Tuple, error) {
	start := n.w.clock.Now()
	t, err := n.inner.run(ctx, rt)
	d := n.w.clock.Since(start)

	if err != nil {
		rej := AsRejection(err)
		n.w.logger.Warn().
			Str("filter", n.w.name).
			Dur("duration", d).
			Str("kind", rej.Kind().String()).
			Err(err).
			Msg("filter rejected")
		capitan.Emit(ctx, FilterEvaluated,
			KeyFilter.Field(n.w.name),
			KeyDuration.Field(d),
			KeyKind.Field(rej.Kind().String()),
			KeyError.Field(err.Error()),
		)
		return nil, err
	}

	n.w.logger.Debug().
		Str("filter", n.w.name).
		Dur("duration", d).
		Msg("filter matched")
	capitan.Emit(ctx, FilterEvaluated,
		KeyFilter.Field(n.w.name),
		KeyDuration.Field(d),
	)
	return t, nil
}
