package state

// View is a read-only facade over a notifier, handed to consumers who must
// not mutate it. Reads, subscriptions, and source management forward to the
// underlying notifier; the write operations fail with *RestrictedError
// naming the blocked call.
type View[T any] struct {
	n *Notifier[T]
}

// ID returns the underlying notifier's instance identifier.
func (v *View[T]) ID() string {
	if v == nil {
		return ""
	}
	return v.n.ID()
}

// Value returns the current value, or the zero value when none is held.
func (v *View[T]) Value() T {
	if v == nil {
		var zero T
		return zero
	}
	return v.n.Value()
}

// HasValue reports whether a value is held.
func (v *View[T]) HasValue() bool {
	if v == nil {
		return false
	}
	return v.n.HasValue()
}

// Control returns the current control tag.
func (v *View[T]) Control() Control {
	if v == nil {
		return ControlInitial
	}
	return v.n.Control()
}

// HasEmitted reports whether anything has been emitted since construction.
func (v *View[T]) HasEmitted() bool {
	if v == nil {
		return false
	}
	return v.n.HasEmitted()
}

// Subscribe registers a listener for emissions.
func (v *View[T]) Subscribe(fn func(Change[T])) (func(), error) {
	if v == nil {
		return func() {}, nil
	}
	return v.n.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
func (v *View[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(Change[T])) (func(), error) {
	if v == nil {
		return func() {}, nil
	}
	return v.n.SubscribeWithScheduler(scheduler, fn)
}

// OnChange registers a payload-free change listener. It implements Source.
func (v *View[T]) OnChange(fn func()) (func(), error) {
	if v == nil {
		return func() {}, nil
	}
	return v.n.OnChange(fn)
}

// AttachSource forwards to the underlying notifier's AttachSource.
func (v *View[T]) AttachSource(src Source, onFire func(*Notifier[T])) bool {
	if v == nil {
		return false
	}
	return v.n.AttachSource(src, onFire)
}

// DetachSource forwards to the underlying notifier's DetachSource.
func (v *View[T]) DetachSource(cleanup func()) bool {
	if v == nil {
		return false
	}
	return v.n.DetachSource(cleanup)
}

// Set is blocked on a read-only view.
func (v *View[T]) Set(value T) error {
	return &RestrictedError{Op: "Set", Args: []any{value}}
}

// SetWithControl is blocked on a read-only view.
func (v *View[T]) SetWithControl(value T, ctrl Control) error {
	return &RestrictedError{Op: "SetWithControl", Args: []any{value, ctrl}}
}

// SetControl is blocked on a read-only view.
func (v *View[T]) SetControl(ctrl Control) error {
	return &RestrictedError{Op: "SetControl", Args: []any{ctrl}}
}

// Touch is blocked on a read-only view.
func (v *View[T]) Touch() error {
	return &RestrictedError{Op: "Touch"}
}

var _ Readable[int] = (*View[int])(nil)
