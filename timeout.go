package sieve

import (
	"time"

	"github.com/zoobzio/pipz"
)

// Timeout bounds every request evaluation to the given duration.
//
// The deadline covers the filter pipeline only, not response writing or
// websocket sessions. An evaluation that exceeds it fails as an
// internal fault and answers 500. AndThen callbacks doing I/O should
// honor their ctx so the cutoff actually interrupts them.
//
// Capabilities wrap the evaluation in the order configured; the last
// configured is outermost.
//
//	srv := sieve.NewServer(api.Boxed()).
//	    Timeout(2 * time.Second)
func (s *Server) Timeout(d time.Duration) *Server {
	s.exec = pipz.NewTimeout("timeout", s.exec, d)
	return s
}
