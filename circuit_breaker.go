package sieve

import (
	"time"

	"github.com/zoobzio/pipz"
)

// Breaker opens the evaluation circuit after threshold consecutive
// pipeline faults, then fails requests fast until the cooldown elapses
// and a trial evaluation succeeds. Ordinary rejections never count
// against the threshold; a burst of 404s cannot trip it.
//
// While the circuit is open, requests answer 500 without evaluating the
// pipeline.
//
//	srv := sieve.NewServer(api.Boxed()).
//	    Breaker(5, 30*time.Second)
func (s *Server) Breaker(threshold int, cooldown time.Duration) *Server {
	s.exec = pipz.NewCircuitBreaker("circuit-breaker", s.exec, threshold, cooldown)
	return s
}
