package state

import "sync"

// Derived is a read-only notifier whose value is computed from other sources
// and recomputed whenever any of them fires. Recomputed values go through the
// usual equality check, so a recompute that lands on the same value does not
// retrigger subscribers.
type Derived[T any] struct {
	n         *Notifier[T]
	compute   func() T
	mu        sync.Mutex
	cancels   []func()
	scheduler Scheduler
}

// NewDerived creates a derived value from its dependencies.
func NewDerived[T any](compute func() T, deps ...Source) *Derived[T] {
	return NewDerivedWithScheduler(nil, compute, deps...)
}

// NewDerivedWithScheduler creates a derived value whose recomputes are
// dispatched through scheduler. If scheduler is nil, recomputes run
// synchronously when a dependency fires.
func NewDerivedWithScheduler[T any](scheduler Scheduler, compute func() T, deps ...Source) *Derived[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	d := &Derived[T]{
		n:         NewNotifierValue(compute()),
		compute:   compute,
		scheduler: scheduler,
	}
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		cancel, err := dep.OnChange(d.enqueueRecompute)
		if err != nil {
			continue
		}
		d.cancels = append(d.cancels, cancel)
	}
	return d
}

// SetEqualFunc configures the equality check used to suppress redundant
// recomputes.
func (d *Derived[T]) SetEqualFunc(fn EqualFunc[T]) {
	if d == nil {
		return
	}
	d.n.SetEqualFunc(fn)
}

// ID returns the underlying notifier's instance identifier.
func (d *Derived[T]) ID() string {
	if d == nil {
		return ""
	}
	return d.n.ID()
}

// Value returns the current computed value.
func (d *Derived[T]) Value() T {
	if d == nil {
		var zero T
		return zero
	}
	return d.n.Value()
}

// HasValue reports whether a value is held; for a derived value this is true
// from construction.
func (d *Derived[T]) HasValue() bool {
	if d == nil {
		return false
	}
	return d.n.HasValue()
}

// Control returns the current control tag.
func (d *Derived[T]) Control() Control {
	if d == nil {
		return ControlInitial
	}
	return d.n.Control()
}

// HasEmitted reports whether a recompute has emitted since construction.
func (d *Derived[T]) HasEmitted() bool {
	if d == nil {
		return false
	}
	return d.n.HasEmitted()
}

// Subscribe registers a listener for recomputed values.
func (d *Derived[T]) Subscribe(fn func(Change[T])) (func(), error) {
	if d == nil {
		return func() {}, nil
	}
	return d.n.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
func (d *Derived[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(Change[T])) (func(), error) {
	if d == nil {
		return func() {}, nil
	}
	return d.n.SubscribeWithScheduler(scheduler, fn)
}

// OnChange registers a payload-free change listener. It implements Source.
func (d *Derived[T]) OnChange(fn func()) (func(), error) {
	if d == nil {
		return func() {}, nil
	}
	return d.n.OnChange(fn)
}

// Stop unsubscribes from dependency updates and disposes the underlying
// notifier. Safe to call repeatedly.
func (d *Derived[T]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	cancels := d.cancels
	d.cancels = nil
	d.mu.Unlock()
	for _, cancel := range cancels {
		if cancel != nil {
			cancel()
		}
	}
	d.n.Dispose()
}

func (d *Derived[T]) recompute() {
	if d == nil {
		return
	}
	// The notifier may already be disposed by Stop; Set then reports
	// ErrClosed, which a late recompute can ignore.
	_ = d.n.Set(d.compute())
}

func (d *Derived[T]) enqueueRecompute() {
	if d == nil {
		return
	}
	if d.scheduler == nil {
		d.recompute()
		return
	}
	d.scheduler.Schedule(d.recompute)
}

var _ Readable[int] = (*Derived[int])(nil)
