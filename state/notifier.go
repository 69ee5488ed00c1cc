// Package state provides reactive primitives for UI frameworks: a notifier
// holds an optional value plus a control tag and broadcasts (value, control)
// pairs to subscribers in subscription order.
package state

import (
	"reflect"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/statekit/report"
)

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Change is one emission: the held value and the control tag accompanying it.
// Every subscriber of a given emission observes the same pair.
type Change[T any] struct {
	Value   T
	Control Control
}

type subscriber[T any] struct {
	id        int
	fn        func(Change[T])
	scheduler Scheduler
}

// Notifier holds a value and a control tag and notifies subscribers on
// change. The creator owns the notifier and is responsible for Dispose;
// subscribers never are.
type Notifier[T any] struct {
	mu       sync.Mutex
	id       string
	value    T
	hasValue bool
	control  Control
	subs     []subscriber[T]
	nextID   int
	equal    EqualFunc[T]
	emitted  bool
	closed   bool
	upstream func()
}

// NewNotifier creates a notifier with no value and ControlInitial.
func NewNotifier[T any]() *Notifier[T] {
	return &Notifier[T]{id: ulid.Make().String()}
}

// NewNotifierValue creates a notifier holding initial under ControlInitial.
func NewNotifierValue[T any](initial T) *Notifier[T] {
	n := NewNotifier[T]()
	n.value = initial
	n.hasValue = true
	return n
}

// NewNotifierWithControl creates a notifier holding initial under ctrl.
func NewNotifierWithControl[T any](initial T, ctrl Control) *Notifier[T] {
	n := NewNotifierValue(initial)
	n.control = ctrl
	return n
}

// ID returns the notifier's instance identifier, used in panic reports.
func (n *Notifier[T]) ID() string {
	if n == nil {
		return ""
	}
	return n.id
}

// SetEqualFunc configures the equality check used by Set to suppress
// redundant updates. When unset, values are compared with reflect.DeepEqual.
func (n *Notifier[T]) SetEqualFunc(fn EqualFunc[T]) {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.equal = fn
	n.mu.Unlock()
}

// Value returns the current value, or the zero value when none is held.
func (n *Notifier[T]) Value() T {
	if n == nil {
		var zero T
		return zero
	}
	n.mu.Lock()
	value := n.value
	n.mu.Unlock()
	return value
}

// HasValue reports whether a value is held.
func (n *Notifier[T]) HasValue() bool {
	if n == nil {
		return false
	}
	n.mu.Lock()
	hasValue := n.hasValue
	n.mu.Unlock()
	return hasValue
}

// Control returns the current control tag.
func (n *Notifier[T]) Control() Control {
	if n == nil {
		return ControlInitial
	}
	n.mu.Lock()
	ctrl := n.control
	n.mu.Unlock()
	return ctrl
}

// HasEmitted reports whether anything has been emitted since construction.
func (n *Notifier[T]) HasEmitted() bool {
	if n == nil {
		return false
	}
	n.mu.Lock()
	emitted := n.emitted
	n.mu.Unlock()
	return emitted
}

// Set stores value and emits it under the current control tag. Setting a
// value equal to the held one is a silent no-op: equal values never retrigger
// subscribers. Use SetWithControl or Touch to force an emission.
func (n *Notifier[T]) Set(value T) error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ErrClosed
	}
	if n.hasValue && n.equalLocked(n.value, value) {
		n.mu.Unlock()
		return nil
	}
	n.value = value
	n.hasValue = true
	change := Change[T]{Value: value, Control: n.control}
	subs := n.snapshotLocked()
	n.emitted = true
	n.mu.Unlock()

	n.notify(subs, change)
	return nil
}

// SetWithControl stores value and ctrl and emits unconditionally, bypassing
// the equality check. This is the path for non-data transitions (error,
// loading, pause) that must reach subscribers even when the payload is
// unchanged.
func (n *Notifier[T]) SetWithControl(value T, ctrl Control) error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ErrClosed
	}
	n.value = value
	n.hasValue = true
	n.control = ctrl
	change := Change[T]{Value: value, Control: ctrl}
	subs := n.snapshotLocked()
	n.emitted = true
	n.mu.Unlock()

	n.notify(subs, change)
	return nil
}

// SetControl stores ctrl and re-emits the current value unconditionally.
func (n *Notifier[T]) SetControl(ctrl Control) error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ErrClosed
	}
	n.control = ctrl
	change := Change[T]{Value: n.value, Control: ctrl}
	subs := n.snapshotLocked()
	n.emitted = true
	n.mu.Unlock()

	n.notify(subs, change)
	return nil
}

// Touch re-emits the current (value, control) pair without changing it,
// forcing subscribers to refresh.
func (n *Notifier[T]) Touch() error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ErrClosed
	}
	change := Change[T]{Value: n.value, Control: n.control}
	subs := n.snapshotLocked()
	n.emitted = true
	n.mu.Unlock()

	n.notify(subs, change)
	return nil
}

// Update replaces the value using fn.
// fn runs outside the notifier lock; Update is not atomic across goroutines.
func (n *Notifier[T]) Update(fn func(T) T) error {
	if n == nil || fn == nil {
		return nil
	}
	return n.Set(fn(n.Value()))
}

// Subscribe registers a listener for emissions. The returned cancel removes
// exactly this subscription; subscribing after Dispose returns ErrClosed.
func (n *Notifier[T]) Subscribe(fn func(Change[T])) (func(), error) {
	return n.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener whose callbacks are dispatched
// through scheduler. If scheduler is nil, callbacks run synchronously on the
// stack of the mutating call, in subscription order.
func (n *Notifier[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(Change[T])) (func(), error) {
	if n == nil || fn == nil {
		return func() {}, nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil, ErrClosed
	}
	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscriber[T]{id: id, fn: fn, scheduler: scheduler})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			for i, sub := range n.subs {
				if sub.id == id {
					n.subs = append(n.subs[:i], n.subs[i+1:]...)
					break
				}
			}
			n.mu.Unlock()
		})
	}, nil
}

// OnChange registers a payload-free change listener. It implements Source.
func (n *Notifier[T]) OnChange(fn func()) (func(), error) {
	if n == nil || fn == nil {
		return func() {}, nil
	}
	return n.Subscribe(func(Change[T]) {
		fn()
	})
}

// AttachSource wires src as the notifier's upstream trigger: onFire is
// invoked with the notifier whenever src fires. At most one source may be
// attached; AttachSource reports false, leaving the current attachment
// intact, if one already is, and false if the notifier is closed.
func (n *Notifier[T]) AttachSource(src Source, onFire func(*Notifier[T])) bool {
	if n == nil || src == nil {
		return false
	}
	cancel, err := src.OnChange(func() {
		if onFire != nil {
			onFire(n)
		}
	})
	if err != nil {
		return false
	}
	n.mu.Lock()
	if n.closed || n.upstream != nil {
		n.mu.Unlock()
		cancel()
		return false
	}
	n.upstream = cancel
	n.mu.Unlock()
	return true
}

// DetachSource removes the upstream wiring, invoking cleanup if non-nil. It
// reports false when nothing is attached.
func (n *Notifier[T]) DetachSource(cleanup func()) bool {
	if n == nil {
		return false
	}
	n.mu.Lock()
	cancel := n.upstream
	n.upstream = nil
	n.mu.Unlock()
	if cancel == nil {
		return false
	}
	cancel()
	if cleanup != nil {
		cleanup()
	}
	return true
}

// Dispose closes the notifier: the attached source is detached, subscribers
// are dropped, and further mutation or subscription returns ErrClosed.
// Dispose is idempotent.
func (n *Notifier[T]) Dispose() {
	if n == nil {
		return
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	cancel := n.upstream
	n.upstream = nil
	n.subs = nil
	n.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// View returns a read-only facade over the notifier.
func (n *Notifier[T]) View() *View[T] {
	return &View[T]{n: n}
}

func (n *Notifier[T]) equalLocked(a, b T) bool {
	if n.equal != nil {
		return n.equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func (n *Notifier[T]) snapshotLocked() []subscriber[T] {
	if len(n.subs) == 0 {
		return nil
	}
	subs := make([]subscriber[T], len(n.subs))
	copy(subs, n.subs)
	return subs
}

// notify delivers change to a snapshot of the subscriber list, so cancelling
// a subscription mid-emission cannot disturb delivery to the others.
func (n *Notifier[T]) notify(subs []subscriber[T], change Change[T]) {
	for _, sub := range subs {
		if sub.fn == nil {
			continue
		}
		if sub.scheduler != nil {
			fn := sub.fn
			sub.scheduler.Schedule(func() {
				n.deliver(fn, change)
			})
			continue
		}
		n.deliver(sub.fn, change)
	}
}

func (n *Notifier[T]) deliver(fn func(Change[T]), change Change[T]) {
	defer report.Handle("state.Notifier.notify", n.id)
	fn(change)
}

var _ Writable[int] = (*Notifier[int])(nil)
