package sieve

import "sync"

// rejectRing is a thread-safe ring buffer retaining recent rejections
// for diagnostics. A nil ring is a valid disabled ring.
type rejectRing struct {
	mu    sync.RWMutex
	rejs  []*Rejection
	size  int
	head  int
	count int
}

// newRejectRing creates a ring with the given capacity, or nil when
// the capacity disables retention.
func newRejectRing(size int) *rejectRing {
	if size <= 0 {
		return nil
	}
	return &rejectRing{
		rejs: make([]*Rejection, size),
		size: size,
	}
}

// push records a rejection, evicting the oldest when full.
func (r *rejectRing) push(rej *Rejection) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rejs[r.head] = rej
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns the retained rejections, oldest first.
func (r *rejectRing) all() []*Rejection {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]*Rejection, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.rejs[(start+i)%r.size]
	}
	return result
}
