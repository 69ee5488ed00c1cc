package bind

import "sync/atomic"

// Invalidator coalesces render requests: however many emissions land between
// render passes, at most one request is posted. It satisfies state.Scheduler,
// so it can back bindings directly.
type Invalidator struct {
	request func() bool
	pending atomic.Bool
}

// NewInvalidator wires the invalidator to a request function, typically one
// that posts a render message into an event loop. request reports whether
// the post was accepted.
func NewInvalidator(request func() bool) *Invalidator {
	return &Invalidator{request: request}
}

// Invalidate requests a render pass unless one is already pending.
func (i *Invalidator) Invalidate() {
	if i == nil || i.request == nil {
		return
	}
	if i.pending.CompareAndSwap(false, true) {
		if !i.request() {
			i.pending.Store(false)
		}
	}
}

// Schedule runs fn and requests a render pass.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

// Reset re-arms the invalidator; call it at the end of a render pass.
func (i *Invalidator) Reset() {
	if i == nil {
		return
	}
	i.pending.Store(false)
}
