package registry

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistry_IndependentCommunities(t *testing.T) {
	r := New()
	r.Set("g1", "c1")
	r.Set("g2", "c2")

	if d, ok := r.Get("g1"); !ok || d != "c1" {
		t.Errorf("Get(g1) = %q, %v; want c1, true", d, ok)
	}
	if d, ok := r.Get("g2"); !ok || d != "c2" {
		t.Errorf("Get(g2) = %q, %v; want c2, true", d, ok)
	}

	// Reversed write order must not change the outcome.
	r2 := New()
	r2.Set("g2", "c2")
	r2.Set("g1", "c1")
	if d, _ := r2.Get("g1"); d != "c1" {
		t.Errorf("after reversed order Get(g1) = %q; want c1", d)
	}
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := New()
	r.Set("g", "old")
	r.Set("g", "new")
	if d, _ := r.Get("g"); d != "new" {
		t.Errorf("Get = %q; want new", d)
	}
	r.Set("g", "new") // repeating the same write changes nothing
	if d, _ := r.Get("g"); d != "new" {
		t.Errorf("Get after repeat = %q; want new", d)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d; want 1", r.Len())
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := New()
	r.Set("g", "c")
	r.Remove("g")
	if _, ok := r.Get("g"); ok {
		t.Error("Get after Remove reported a destination")
	}
	r.Remove("g") // removing again is a no-op
	r.Remove("never-configured")
}

func TestRegistry_Sole(t *testing.T) {
	r := New()
	if _, ok := r.Sole(); ok {
		t.Error("Sole on empty registry reported an entry")
	}

	r.Set("g1", "c1")
	e, ok := r.Sole()
	if !ok || e.CommunityID != "g1" || e.DestinationID != "c1" {
		t.Errorf("Sole = %+v, %v; want g1/c1, true", e, ok)
	}

	r.Set("g2", "c2")
	if _, ok := r.Sole(); ok {
		t.Error("Sole with two entries reported an entry; ambiguity must not be guessed away")
	}
}

func TestRegistry_AllSnapshot(t *testing.T) {
	r := New()
	r.Set("g1", "c1")
	r.Set("g2", "c2")

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("All returned %d entries; want 2", len(all))
	}
	seen := map[string]string{}
	for _, e := range all {
		seen[e.CommunityID] = e.DestinationID
	}
	if seen["g1"] != "c1" || seen["g2"] != "c2" {
		t.Errorf("All = %v; want g1→c1, g2→c2", seen)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := fmt.Sprintf("g%d", i%8)
			r.Set(g, fmt.Sprintf("c%d", i))
			r.Get(g)
			r.All()
			if i%4 == 0 {
				r.Remove(g)
			}
		}(i)
	}
	wg.Wait()
}
