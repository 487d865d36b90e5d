package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	c := New(0)
	c.Set("k", "v", 0)

	v, ok := c.Get("k")
	if !ok || v.(string) != "v" {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted key still present")
	}
}

func TestGetMissing(t *testing.T) {
	c := New(0)
	if _, ok := c.Get("nope"); ok {
		t.Fatal("missing key reported present")
	}
}

func TestExpiry(t *testing.T) {
	c := New(0)
	c.Set("k", 1, time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("fresh entry missing")
	}
	// expiry has one-second granularity
	time.Sleep(2100 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry still present")
	}
}

func TestLRUEviction(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, 0)
	}
	// touch k0 so k1 becomes LRU
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("k0 missing")
	}
	c.Set("k3", 3, 0)

	if _, ok := c.Get("k1"); ok {
		t.Fatal("LRU entry k1 should have been evicted")
	}
	for _, k := range []string{"k0", "k2", "k3"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("%s unexpectedly evicted", k)
		}
	}
	if n := c.Len(); n != 3 {
		t.Fatalf("Len = %d, want 3", n)
	}
}

func TestOverwriteKeepsSingleEntry(t *testing.T) {
	c := New(2)
	c.Set("k", 1, 0)
	c.Set("k", 2, 0)
	if n := c.Len(); n != 1 {
		t.Fatalf("Len = %d after overwrite, want 1", n)
	}
	v, _ := c.Get("k")
	if v.(int) != 2 {
		t.Fatalf("overwritten value = %v, want 2", v)
	}
}
