package state

import (
	"errors"
	"strings"
	"testing"
)

func TestView_ForwardsReads(t *testing.T) {
	n := NewNotifierWithControl(42, ControlData)
	v := n.View()

	if v.Value() != 42 {
		t.Fatalf("expected 42, got %d", v.Value())
	}
	if !v.HasValue() {
		t.Fatalf("expected value held")
	}
	if v.Control() != ControlData {
		t.Fatalf("expected control data, got %v", v.Control())
	}
	if v.ID() != n.ID() {
		t.Fatalf("expected view to share the notifier id")
	}

	calls := 0
	cancel, err := v.Subscribe(func(c Change[int]) {
		if c.Value != 43 {
			t.Fatalf("expected 43, got %d", c.Value)
		}
		calls++
	})
	if err != nil {
		t.Fatalf("unexpected subscribe error: %v", err)
	}

	n.Set(43)
	if calls != 1 {
		t.Fatalf("expected 1 emission through the view, got %d", calls)
	}
	cancel()
}

func TestView_BlocksWrites(t *testing.T) {
	n := NewNotifierValue(1)
	v := n.View()

	calls := 0
	n.Subscribe(func(Change[int]) {
		calls++
	})

	var restricted *RestrictedError
	if err := v.Set(2); !errors.As(err, &restricted) || restricted.Op != "Set" {
		t.Fatalf("expected restricted Set, got %v", err)
	}
	if err := v.SetWithControl(2, ControlError); !errors.As(err, &restricted) || restricted.Op != "SetWithControl" {
		t.Fatalf("expected restricted SetWithControl, got %v", err)
	}
	if err := v.SetControl(ControlError); !errors.As(err, &restricted) || restricted.Op != "SetControl" {
		t.Fatalf("expected restricted SetControl, got %v", err)
	}
	if err := v.Touch(); !errors.As(err, &restricted) || restricted.Op != "Touch" {
		t.Fatalf("expected restricted Touch, got %v", err)
	}

	if calls != 0 {
		t.Fatalf("expected no emissions from blocked writes, got %d", calls)
	}
	if n.Value() != 1 {
		t.Fatalf("expected value untouched, got %d", n.Value())
	}
}

func TestView_RestrictedErrorNamesOperation(t *testing.T) {
	v := NewNotifierValue(1).View()
	err := v.Set(9)
	if !strings.Contains(err.Error(), "Set") || !strings.Contains(err.Error(), "9") {
		t.Fatalf("expected error naming the blocked call and its argument, got %q", err.Error())
	}
}

func TestView_SourceManagement(t *testing.T) {
	upstream := NewNotifierValue(0)
	n := NewNotifierValue(0)
	v := n.View()
	fired := 0

	if !v.AttachSource(upstream, func(*Notifier[int]) { fired++ }) {
		t.Fatalf("expected attach through view to succeed")
	}
	upstream.Set(1)
	if fired != 1 {
		t.Fatalf("expected 1 fire, got %d", fired)
	}
	if !v.DetachSource(nil) {
		t.Fatalf("expected detach through view to succeed")
	}
}
