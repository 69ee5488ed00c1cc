// Package request routes keyed, fire-and-forget requests to per-key handlers
// with a multicast fallback feed for unmatched keys.
package request

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/statekit/report"
)

// Bus routes requests by key. Each key carries at most one handler; requests
// for keys without one go to the unmatched feed. There is no buffering: a
// request sent while nothing listens is dropped.
type Bus[K comparable, D any] struct {
	mu        sync.Mutex
	id        string
	routes    map[K]func(D)
	fallbacks []fallback[D]
	nextID    int
}

type fallback[D any] struct {
	id int
	fn func(D)
}

// NewBus creates an empty bus.
func NewBus[K comparable, D any]() *Bus[K, D] {
	return &Bus[K, D]{
		id:     ulid.Make().String(),
		routes: make(map[K]func(D)),
	}
}

// ID returns the bus's instance identifier, used in panic reports.
func (b *Bus[K, D]) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Listen installs handler as the route for key. It reports false and leaves
// the existing route untouched when key is already routed: only the first
// handler per key is honored, callers needing more must demultiplex behind
// their own handler.
func (b *Bus[K, D]) Listen(key K, handler func(D)) bool {
	if b == nil || handler == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.routes == nil {
		b.routes = make(map[K]func(D))
	}
	if _, ok := b.routes[key]; ok {
		return false
	}
	b.routes[key] = handler
	return true
}

// Remove deletes the route for key entirely, so later sends for key fall
// back to the unmatched feed. It reports false when key has no route.
func (b *Bus[K, D]) Remove(key K) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.routes[key]; !ok {
		return false
	}
	delete(b.routes, key)
	return true
}

// OnUnmatched subscribes fn to requests whose key has no route. The returned
// cancel removes exactly this subscription.
func (b *Bus[K, D]) OnUnmatched(fn func(D)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.fallbacks = append(b.fallbacks, fallback[D]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			for i, f := range b.fallbacks {
				if f.id == id {
					b.fallbacks = append(b.fallbacks[:i], b.fallbacks[i+1:]...)
					break
				}
			}
			b.mu.Unlock()
		})
	}
}

// Send dispatches data to the route for key, or to every unmatched
// subscriber when no route exists. Send never fails: with no route and no
// unmatched subscribers the request is dropped.
func (b *Bus[K, D]) Send(key K, data D) {
	if b == nil {
		return
	}
	b.mu.Lock()
	handler := b.routes[key]
	var fns []func(D)
	if handler == nil && len(b.fallbacks) > 0 {
		fns = make([]func(D), 0, len(b.fallbacks))
		for _, f := range b.fallbacks {
			fns = append(fns, f.fn)
		}
	}
	b.mu.Unlock()

	if handler != nil {
		b.dispatch(handler, data)
		return
	}
	for _, fn := range fns {
		b.dispatch(fn, data)
	}
}

func (b *Bus[K, D]) dispatch(fn func(D), data D) {
	defer report.Handle("request.Bus.Send", b.id)
	fn(data)
}
