package store

import (
	"sync"
	"testing"
)

func TestCacheLoadAndItems(t *testing.T) {
	c := NewCache[int]()
	if c.Loaded() {
		t.Fatal("new cache must not report loaded")
	}

	c.Complete(c.Begin(), []int{1, 2, 3})
	if !c.Loaded() {
		t.Error("cache must report loaded after a completed reload")
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	items := c.Items()
	items[0] = 99
	if c.Items()[0] != 1 {
		t.Error("Items() must return a copy, not the backing slice")
	}
}

func TestCacheGenerationGuard(t *testing.T) {
	c := NewCache[string]()

	first := c.Begin()
	second := c.Begin()

	// The later reload lands first.
	if !c.Complete(second, []string{"new"}) {
		t.Fatal("newest generation must be accepted")
	}
	// The stale reload arrives afterwards and must be discarded.
	if c.Complete(first, []string{"stale"}) {
		t.Error("superseded generation must be rejected")
	}
	if got := c.Items(); len(got) != 1 || got[0] != "new" {
		t.Errorf("cache = %v, want the newest load only", got)
	}
}

func TestCacheSameGenerationCompletesOnce(t *testing.T) {
	c := NewCache[string]()
	gen := c.Begin()
	if !c.Complete(gen, []string{"a"}) {
		t.Fatal("first completion must be accepted")
	}
	if c.Complete(gen, []string{"b"}) {
		t.Error("a generation must not complete twice")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			gen := c.Begin()
			c.Complete(gen, []int{n})
		}(i)
		go func() {
			defer wg.Done()
			c.Items()
			c.Len()
			c.Loaded()
		}()
	}
	wg.Wait()
}
