// internal/platform/cache/cache_test.go
package cache

import "testing"

func TestSetAndGet(t *testing.T) {
	c := NewMemoryCache[string](4)

	c.Set("a", "1")
	c.Set("b", "2")

	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report a miss")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestSetUpdatesExisting(t *testing.T) {
	c := NewMemoryCache[int](4)

	c.Set("k", 1)
	c.Set("k", 2)

	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("Get(k) = %d, want 2", v)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewMemoryCache[int](2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a pasa a ser el más reciente
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted as the least recently used entry")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive: it was touched before the eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := NewMemoryCache[int](4)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry should be gone")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", c.Size())
	}
}

func TestDefaultCapacity(t *testing.T) {
	c := NewMemoryCache[int](0)
	if c.Capacity() != 100 {
		t.Errorf("Capacity() = %d, want default 100", c.Capacity())
	}
}
