package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a settable time source for expiry tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestTTLCache_PutGet(t *testing.T) {
	clock := newFakeClock()
	c := New(0, WithClock(clock.Now))
	defer c.Close()

	c.Put("key", "value", time.Minute)
	got, ok := c.Get("key")
	if !ok || got != "value" {
		t.Fatalf("expected hit with %q, got %v %v", "value", got, ok)
	}
}

func TestTTLCache_Miss(t *testing.T) {
	c := New(0)
	defer c.Close()

	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	c := New(0, WithClock(clock.Now))
	defer c.Close()

	c.Put("key", 42, time.Minute)

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("key"); !ok {
		t.Fatal("entry expired early")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("key"); ok {
		t.Fatal("entry should be expired at exactly its TTL")
	}
}

func TestTTLCache_ExpiredEntryRemovedOnGet(t *testing.T) {
	clock := newFakeClock()
	c := New(0, WithClock(clock.Now))
	defer c.Close()

	c.Put("key", 1, time.Second)
	clock.Advance(2 * time.Second)
	c.Get("key")

	if c.Len() != 0 {
		t.Fatalf("expired entry not removed on access, len=%d", c.Len())
	}
}

func TestTTLCache_PutRefreshesTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(0, WithClock(clock.Now))
	defer c.Close()

	c.Put("key", 1, time.Minute)
	clock.Advance(50 * time.Second)
	c.Put("key", 2, time.Minute)
	clock.Advance(50 * time.Second)

	got, ok := c.Get("key")
	if !ok || got != 2 {
		t.Fatalf("expected refreshed entry with value 2, got %v %v", got, ok)
	}
}

func TestTTLCache_Delete(t *testing.T) {
	c := New(0)
	defer c.Close()

	c.Put("key", 1, time.Minute)
	c.Delete("key")
	if _, ok := c.Get("key"); ok {
		t.Fatal("deleted entry still present")
	}
}

func TestTTLCache_Sweep(t *testing.T) {
	clock := newFakeClock()
	c := New(0, WithClock(clock.Now))
	defer c.Close()

	c.Put("short", 1, time.Second)
	c.Put("long", 2, time.Hour)
	clock.Advance(time.Minute)
	c.sweep()

	if c.Len() != 1 {
		t.Fatalf("expected one surviving entry, len=%d", c.Len())
	}
	if _, ok := c.Get("long"); !ok {
		t.Fatal("long-lived entry swept")
	}
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	c := New(0)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n))
			for j := 0; j < 100; j++ {
				c.Put(key, j, time.Minute)
				c.Get(key)
				c.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}
