package handles

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	id := r.Register(Handle(0xbeef))
	if id != "tdc-1" {
		t.Errorf("first id = %q, want tdc-1", id)
	}

	got, ok := r.Lookup(id)
	if !ok {
		t.Fatal("Lookup should find a registered id")
	}
	if got != Handle(0xbeef) {
		t.Errorf("Lookup returned %#x, want 0xbeef", got)
	}
}

func TestRegisterZeroHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(0) should panic")
		}
	}()
	NewRegistry().Register(0)
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	id := r.Register(Handle(7))

	var released []Handle
	if !r.Unregister(id, func(h Handle) { released = append(released, h) }) {
		t.Fatal("Unregister should report a registered id")
	}
	if len(released) != 1 || released[0] != Handle(7) {
		t.Errorf("release got %v, want [7]", released)
	}

	// Verify it's gone
	if _, ok := r.Lookup(id); ok {
		t.Error("Expected id to be gone after Unregister")
	}
	if r.Unregister(id, func(Handle) { t.Error("release called for unknown id") }) {
		t.Error("second Unregister should fail")
	}
}

func TestUnregisterNilRelease(t *testing.T) {
	r := NewRegistry()
	id := r.Register(Handle(1))
	if !r.Unregister(id, nil) {
		t.Error("Unregister with nil release should succeed")
	}
}

func TestLookupNonExistent(t *testing.T) {
	if _, ok := NewRegistry().Lookup("tdc-999999"); ok {
		t.Error("Lookup of non-existent id should fail")
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	r := NewRegistry()
	a := r.Register(Handle(1))
	r.Unregister(a, nil)
	b := r.Register(Handle(1))

	if a == b {
		t.Errorf("id %q reused after Unregister", a)
	}
	if Seq(b) <= Seq(a) {
		t.Errorf("ids not increasing: %s then %s", a, b)
	}
}

func TestIDsInCreationOrder(t *testing.T) {
	r := NewRegistry()
	var want []string
	for i := 1; i <= 12; i++ {
		want = append(want, r.Register(Handle(i)))
	}
	r.Unregister(want[3], nil)
	want = append(want[:3], want[4:]...)

	got := r.IDs()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if r.Count() != len(want) {
		t.Errorf("Count() = %d, want %d", r.Count(), len(want))
	}
}

func TestSeq(t *testing.T) {
	tests := map[string]uint64{
		"tdc-1":   1,
		"tdc-42":  42,
		"tdc-":    0,
		"tdc-x":   0,
		"client1": 0,
	}
	for id, want := range tests {
		if got := Seq(id); got != want {
			t.Errorf("Seq(%q) = %d, want %d", id, got, want)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numOps = 100

	r := NewRegistry()
	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(g int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				id := r.Register(Handle(g*numOps + j + 1))

				mu.Lock()
				if seen[id] {
					t.Errorf("id %s issued twice", id)
				}
				seen[id] = true
				mu.Unlock()

				if _, ok := r.Lookup(id); !ok {
					t.Errorf("Lookup failed for %s", id)
				}
				if !r.Unregister(id, nil) {
					t.Errorf("Unregister failed for %s", id)
				}
			}
		}(i)
	}

	wg.Wait()

	if r.Count() != 0 {
		t.Errorf("Count() = %d after all Unregister calls", r.Count())
	}
}

func TestConcurrentUnregisterReleasesOnce(t *testing.T) {
	r := NewRegistry()
	id := r.Register(Handle(3))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		releases int
		wins     int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok := r.Unregister(id, func(Handle) {
				mu.Lock()
				releases++
				mu.Unlock()
			})
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if releases != 1 || wins != 1 {
		t.Errorf("releases=%d wins=%d, want exactly one of each", releases, wins)
	}
}
