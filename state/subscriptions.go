package state

import "sync"

// Subscriptions tracks cancel callbacks so a consumer can tear down every
// subscription it holds in one call, typically on unmount or dispose.
type Subscriptions struct {
	mu      sync.Mutex
	cancels []func()
	sched   Scheduler
}

// NewSubscriptions creates a Subscriptions with a default scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Scheduler returns the default scheduler.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()
	return scheduler
}

// Add registers a cancel callback.
func (s *Subscriptions) Add(cancel func()) {
	if s == nil || cancel == nil {
		return
	}
	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()
}

// Observe registers a payload-free listener on src through the default
// scheduler and tracks its cancel.
func (s *Subscriptions) Observe(src Source, fn func()) error {
	if s == nil || src == nil || fn == nil {
		return nil
	}
	scheduler := s.Scheduler()
	listener := fn
	if scheduler != nil {
		listener = func() {
			scheduler.Schedule(fn)
		}
	}
	cancel, err := src.OnChange(listener)
	if err != nil {
		return err
	}
	s.Add(cancel)
	return nil
}

// Watch registers a typed listener on src through the tracker's default
// scheduler and tracks its cancel.
func Watch[T any](s *Subscriptions, src Readable[T], fn func(Change[T])) error {
	if s == nil || src == nil || fn == nil {
		return nil
	}
	cancel, err := src.SubscribeWithScheduler(s.Scheduler(), fn)
	if err != nil {
		return err
	}
	s.Add(cancel)
	return nil
}

// Clear cancels all tracked subscriptions.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()
	for _, cancel := range cancels {
		if cancel != nil {
			cancel()
		}
	}
}
