package frontend

import (
	"sync"
	"time"
)

// Handle identifies a requested frame callback. The zero Handle is never
// issued and is safe to cancel.
type Handle uint64

// FrameFunc is invoked once per display frame with the frame timestamp.
type FrameFunc func(now time.Time) error

// Scheduler is the per-frame callback facility: a callback requested now runs
// once, on the next frame, unless cancelled first.
type Scheduler interface {
	RequestFrame(cb FrameFunc) Handle
	CancelFrame(h Handle)
}

type frameRequest struct {
	handle Handle
	cb     FrameFunc
}

// Loop is a single-threaded event queue pumped by the host once per display
// refresh. Frame callbacks and posted tasks all run on the goroutine calling
// RunFrame. Post is the only method safe to call from other goroutines.
type Loop struct {
	next    Handle
	pending []frameRequest

	mu     sync.Mutex
	posted []func()
}

// NewLoop returns an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// RequestFrame schedules cb for the next RunFrame.
func (l *Loop) RequestFrame(cb FrameFunc) Handle {
	l.next++
	l.pending = append(l.pending, frameRequest{handle: l.next, cb: cb})
	return l.next
}

// CancelFrame removes a pending callback. Cancelling a handle that already ran,
// was already cancelled or was never issued does nothing.
func (l *Loop) CancelFrame(h Handle) {
	if h == 0 {
		return
	}
	for i, req := range l.pending {
		if req.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending reports the number of frame callbacks waiting for the next frame.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Post queues fn to run on the loop goroutine at the start of the next frame.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// RunFrame runs posted tasks, then every frame callback that is pending at
// that point, in request order. Callbacks requested while the frame runs are
// deferred to the next frame, and a callback cancelled by an earlier one in the
// same frame does not run. The first callback error is returned once the frame
// is complete.
func (l *Loop) RunFrame(now time.Time) error {
	l.mu.Lock()
	tasks := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}

	due := make(map[Handle]bool, len(l.pending))
	for _, req := range l.pending {
		due[req.handle] = true
	}

	var first error
	for {
		req, ok := l.popDue(due)
		if !ok {
			break
		}
		if err := req.cb(now); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// popDue removes and returns the oldest pending request that was due when the
// frame started.
func (l *Loop) popDue(due map[Handle]bool) (frameRequest, bool) {
	for i, req := range l.pending {
		if due[req.handle] {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			delete(due, req.handle)
			return req, true
		}
	}
	return frameRequest{}, false
}
