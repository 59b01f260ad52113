package sieve

import "github.com/zoobzio/pipz"

// OnFault attaches a fault observer. When an evaluation fails with a
// pipeline fault rather than an ordinary rejection, the observer runs
// with the pipz error details before the 500 is written; the fault
// still propagates afterward. This is the place for alerting or dead
// letter capture, since faults are the failures worth paging on.
//
// Rejections never reach the observer; watch them through
// RequestRejected signals, metrics, or RejectionHistory.
//
//	srv.OnFault(pipz.Effect("page", func(_ context.Context, pe *pipz.Error[*sieve.Evaluation]) error {
//	    log.Printf("pipeline fault on %s: %v", pe.InputData.Route().Path(), pe.Err)
//	    return nil
//	}))
func (s *Server) OnFault(observer pipz.Chainable[*pipz.Error[*Evaluation]]) *Server {
	s.exec = pipz.NewHandle("fault-handler", s.exec, observer)
	return s
}
