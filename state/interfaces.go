package state

// Source is a type-erased handle on reactive state, used where notifiers of
// different payload types are composed: multi-source bindings and upstream
// attachment.
type Source interface {
	// HasEmitted reports whether anything has been emitted since construction.
	HasEmitted() bool
	// OnChange registers a payload-free change listener and returns its cancel.
	OnChange(fn func()) (func(), error)
}

// Readable exposes the read half of a notifier.
type Readable[T any] interface {
	Source
	Value() T
	HasValue() bool
	Control() Control
	Subscribe(fn func(Change[T])) (func(), error)
	SubscribeWithScheduler(scheduler Scheduler, fn func(Change[T])) (func(), error)
}

// Writable exposes the full read/write surface of a notifier.
type Writable[T any] interface {
	Readable[T]
	Set(value T) error
	SetWithControl(value T, ctrl Control) error
	SetControl(ctrl Control) error
	Touch() error
}
