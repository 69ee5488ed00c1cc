package bind

import (
	"sync"

	"github.com/odvcencio/statekit/state"
)

// Group renders from a heterogeneous set of sources. The first render waits
// until every source has emitted at least once since its construction; after
// that, any emission triggers a render.
type Group struct {
	mu      sync.Mutex
	subs    *state.Subscriptions
	sched   state.Scheduler
	render  func()
	seen    []bool
	pending int
	closed  bool
}

// NewGroup binds render to sources, dispatching through scheduler when
// non-nil. Sources that have already emitted count toward readiness; if all
// of them have, the first render fires immediately.
func NewGroup(scheduler state.Scheduler, render func(), sources ...state.Source) (*Group, error) {
	g := &Group{
		subs:   state.NewSubscriptions(nil),
		sched:  scheduler,
		render: render,
		seen:   make([]bool, len(sources)),
	}
	for i, src := range sources {
		if src == nil {
			g.seen[i] = true
			continue
		}
		if src.HasEmitted() {
			g.seen[i] = true
		} else {
			g.pending++
		}
		// Arrival tracking subscribes unscheduled so readiness is counted
		// synchronously; only the render itself goes through the scheduler.
		cancel, err := src.OnChange(g.fire(i))
		if err != nil {
			g.Close()
			return nil, err
		}
		g.subs.Add(cancel)
	}
	if g.pending == 0 {
		g.scheduleRender()
	}
	return g, nil
}

// Ready reports whether every source has emitted since its construction.
func (g *Group) Ready() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	ready := g.pending == 0
	g.mu.Unlock()
	return ready
}

// Close tears down every subscription. Safe to call repeatedly.
func (g *Group) Close() {
	if g == nil {
		return
	}
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()
	g.subs.Clear()
}

func (g *Group) fire(i int) func() {
	return func() {
		g.mu.Lock()
		if g.closed {
			g.mu.Unlock()
			return
		}
		if !g.seen[i] {
			g.seen[i] = true
			g.pending--
		}
		ready := g.pending == 0
		g.mu.Unlock()
		if ready {
			g.scheduleRender()
		}
	}
}

func (g *Group) scheduleRender() {
	if g.render == nil {
		return
	}
	if g.sched != nil {
		g.sched.Schedule(g.render)
		return
	}
	g.render()
}
