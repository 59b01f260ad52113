package sieve

import (
	"time"

	"github.com/zoobzio/pipz"
)

// Retry re-evaluates a request up to attempts times when the pipeline
// faults. Ordinary rejections are never retried. Between attempts the
// route cursor is rewound and the memoized body reused, so every
// attempt observes identical request state.
//
//	srv := sieve.NewServer(api.Boxed()).
//	    Retry(3)
func (s *Server) Retry(attempts int) *Server {
	s.exec = pipz.NewRetry("retry", s.exec, attempts)
	return s
}

// Backoff is Retry with exponentially increasing delays between
// attempts, starting at baseDelay. Prefer it over Retry when faults
// come from a dependency that needs time to recover.
//
//	srv := sieve.NewServer(api.Boxed()).
//	    Backoff(5, time.Second)
func (s *Server) Backoff(attempts int, baseDelay time.Duration) *Server {
	s.exec = pipz.NewBackoff("backoff", s.exec, attempts, baseDelay)
	return s
}
