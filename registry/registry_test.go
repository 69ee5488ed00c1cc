package registry

import (
	"errors"
	"testing"
)

type clock interface {
	Now() int64
}

type fixedClock struct {
	at int64
}

func (c *fixedClock) Now() int64 {
	return c.at
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := New()
	c := &fixedClock{at: 7}

	if err := Register(r, c); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	got, err := Get[*fixedClock](r)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got != c {
		t.Fatalf("expected the registered instance back")
	}
}

func TestRegistry_InterfaceKey(t *testing.T) {
	r := New()
	var c clock = &fixedClock{at: 7}

	if err := Register[clock](r, c); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	if IsRegistered[*fixedClock](r) {
		t.Fatalf("expected concrete type not to be registered")
	}
	got, err := Get[clock](r)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.Now() != 7 {
		t.Fatalf("expected 7, got %d", got.Now())
	}
}

func TestRegistry_GetNotRegistered(t *testing.T) {
	r := New()
	if _, err := Get[*fixedClock](r); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := New()
	created := 0

	got, err := GetOrCreate(r, func() *fixedClock {
		created++
		return &fixedClock{at: 1}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.at != 1 || created != 1 {
		t.Fatalf("expected factory-constructed instance, got %v after %d calls", got, created)
	}

	again, err := GetOrCreate(r, func() *fixedClock {
		created++
		return &fixedClock{at: 2}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != got || created != 1 {
		t.Fatalf("expected stored instance without re-running the factory, got %d calls", created)
	}
}

func TestRegistry_NilService(t *testing.T) {
	r := New()
	if err := Register[*fixedClock](r, nil); !errors.Is(err, ErrNilService) {
		t.Fatalf("expected ErrNilService, got %v", err)
	}
	if err := Put[*fixedClock](r, nil); !errors.Is(err, ErrNilService) {
		t.Fatalf("expected ErrNilService from put, got %v", err)
	}
	if _, err := GetOrCreate(r, func() *fixedClock { return nil }); !errors.Is(err, ErrNilService) {
		t.Fatalf("expected ErrNilService from nil factory result, got %v", err)
	}
}

func TestRegistry_Replace(t *testing.T) {
	r := New()
	if err := Replace(r, &fixedClock{at: 1}); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected replace before register to fail, got %v", err)
	}

	Register(r, &fixedClock{at: 1})
	second := &fixedClock{at: 2}
	if err := Replace(r, second); err != nil {
		t.Fatalf("unexpected replace error: %v", err)
	}
	got, _ := Get[*fixedClock](r)
	if got != second {
		t.Fatalf("expected the replacement instance")
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := New()
	Register(r, &fixedClock{at: 1})
	second := &fixedClock{at: 2}
	if err := Put(r, second); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}
	got, _ := Get[*fixedClock](r)
	if got != second {
		t.Fatalf("expected the later registration to win")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := New()
	if err := Unregister[*fixedClock](r); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected unregister of absent type to fail, got %v", err)
	}

	Register(r, &fixedClock{at: 1})
	if err := Unregister[*fixedClock](r); err != nil {
		t.Fatalf("unexpected unregister error: %v", err)
	}
	if IsRegistered[*fixedClock](r) {
		t.Fatalf("expected type gone after unregister")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := New()
	Register(r, &fixedClock{at: 1})
	Register[clock](r, &fixedClock{at: 2})
	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}

	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after clear, got %d", r.Len())
	}
	if _, err := Get[clock](r); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered after clear, got %v", err)
	}
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry
	if err := Register(&r, &fixedClock{at: 1}); err != nil {
		t.Fatalf("unexpected register error on zero value: %v", err)
	}
	if !IsRegistered[*fixedClock](&r) {
		t.Fatalf("expected registration on zero value to stick")
	}
}
