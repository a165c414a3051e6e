package cache

import "testing"

func TestCacheGetBuildsOnce(t *testing.T) {
	c := New[string, int](4)

	calls := 0
	build := func() int { calls++; return 42 }

	if got := c.Get("a", build); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := c.Get("a", build); got != 42 {
		t.Errorf("expected 42 on second get, got %d", got)
	}
	if calls != 1 {
		t.Errorf("expected build called once, got %d", calls)
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := New[int, int](2)

	built := func(v int) func() int { return func() int { return v } }
	c.Get(1, built(10))
	c.Get(2, built(20))
	c.Get(3, built(30))

	if c.Len() != 2 {
		t.Errorf("expected size 2, got %d", c.Len())
	}
	if _, ok := c.Lookup(1); ok {
		t.Error("expected key 1 evicted")
	}
	if v, ok := c.Lookup(3); !ok || v != 30 {
		t.Errorf("expected key 3 retained with value 30, got %d, %v", v, ok)
	}
}

func TestCacheGetRefreshesRecency(t *testing.T) {
	c := New[int, int](2)

	built := func(v int) func() int { return func() int { return v } }
	c.Get(1, built(10))
	c.Get(2, built(20))
	c.Get(1, built(10)) // touch 1 so 2 becomes oldest
	c.Get(3, built(30))

	if _, ok := c.Lookup(1); !ok {
		t.Error("expected key 1 retained after touch")
	}
	if _, ok := c.Lookup(2); ok {
		t.Error("expected key 2 evicted")
	}
}

func TestCacheMinimumSize(t *testing.T) {
	c := New[int, int](0)

	c.Get(1, func() int { return 10 })
	if c.Len() != 1 {
		t.Errorf("expected size 1, got %d", c.Len())
	}
	c.Get(2, func() int { return 20 })
	if c.Len() != 1 {
		t.Errorf("expected size still 1, got %d", c.Len())
	}
	if _, ok := c.Lookup(1); ok {
		t.Error("expected key 1 evicted in size-1 cache")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, string](4)
	c.Get("x", func() string { return "y" })
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if _, ok := c.Lookup("x"); ok {
		t.Error("expected lookup miss after clear")
	}
}
