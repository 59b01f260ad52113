package sieve

import "github.com/zoobzio/pipz"

// Limit caps evaluation throughput at rps requests per second with the
// given burst capacity. Requests over the rate wait for capacity rather
// than failing, so rejection statuses are unaffected under load; use an
// upstream proxy when shedding with 429s is required.
//
//	srv := sieve.NewServer(api.Boxed()).
//	    Limit(100, 10)
func (s *Server) Limit(rps float64, burst int) *Server {
	limiter := pipz.NewRateLimiter[*Evaluation]("rate-limit", rps, burst)
	s.exec = pipz.NewSequence("rate-limited", limiter, s.exec)
	return s
}
