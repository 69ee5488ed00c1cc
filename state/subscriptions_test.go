package state

import "testing"

func TestSubscriptions_Clear(t *testing.T) {
	subs := &Subscriptions{}
	calls := 0

	subs.Add(func() { calls++ })
	subs.Add(func() { calls++ })

	subs.Clear()
	if calls != 2 {
		t.Fatalf("expected 2 cancel calls, got %d", calls)
	}

	subs.Clear()
	if calls != 2 {
		t.Fatalf("expected no extra calls after clear, got %d", calls)
	}
}

func TestSubscriptions_Observe(t *testing.T) {
	n := NewNotifierValue(1)
	queue := NewQueue()
	subs := NewSubscriptions(queue)
	calls := 0

	if err := subs.Observe(n, func() { calls++ }); err != nil {
		t.Fatalf("unexpected observe error: %v", err)
	}

	n.Set(2)
	if calls != 0 {
		t.Fatalf("expected callback to be queued, got %d", calls)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", flushed)
	}
	if calls != 1 {
		t.Fatalf("expected callback after flush, got %d", calls)
	}

	subs.Clear()
	n.Set(3)
	queue.Flush()
	if calls != 1 {
		t.Fatalf("expected no callbacks after clear, got %d", calls)
	}
}

func TestSubscriptions_Watch(t *testing.T) {
	n := NewNotifierValue(1)
	subs := NewSubscriptions(nil)
	var got []Change[int]

	if err := Watch(subs, n, func(c Change[int]) {
		got = append(got, c)
	}); err != nil {
		t.Fatalf("unexpected watch error: %v", err)
	}

	n.SetWithControl(2, ControlData)
	if len(got) != 1 || got[0].Value != 2 || got[0].Control != ControlData {
		t.Fatalf("expected (2, data), got %v", got)
	}

	subs.Clear()
	n.Set(3)
	if len(got) != 1 {
		t.Fatalf("expected no emissions after clear, got %d", len(got))
	}
}

func TestSubscriptions_SetScheduler(t *testing.T) {
	n := NewNotifierValue(1)
	queue := NewQueue()
	subs := &Subscriptions{}
	calls := 0

	subs.SetScheduler(queue)
	subs.Observe(n, func() { calls++ })

	n.Set(2)
	queue.Flush()
	if calls != 1 {
		t.Fatalf("expected callback with scheduler, got %d", calls)
	}
}
