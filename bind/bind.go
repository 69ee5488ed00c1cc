// Package bind connects notifiers to render callbacks: read the current
// snapshot at construction, re-render on every later emission, cancel on
// teardown.
package bind

import (
	"sync"

	"github.com/odvcencio/statekit/state"
)

// Binding ties one readable source to a render callback.
type Binding[T any] struct {
	cancel func()
	once   sync.Once
}

// One delivers the current (value, control) pair of src to render
// synchronously, then re-invokes render for every emission, dispatched
// through scheduler when non-nil. Close releases the subscription.
func One[T any](src state.Readable[T], scheduler state.Scheduler, render func(state.Change[T])) (*Binding[T], error) {
	if src == nil || render == nil {
		return &Binding[T]{}, nil
	}
	render(state.Change[T]{Value: src.Value(), Control: src.Control()})
	cancel, err := src.SubscribeWithScheduler(scheduler, render)
	if err != nil {
		return nil, err
	}
	return &Binding[T]{cancel: cancel}, nil
}

// Close cancels the binding. Safe to call repeatedly.
func (b *Binding[T]) Close() {
	if b == nil {
		return
	}
	b.once.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
	})
}
