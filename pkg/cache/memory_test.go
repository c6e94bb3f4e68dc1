package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	type payload struct {
		Count int    `json:"count"`
		Name  string `json:"name"`
	}

	if err := c.Set(ctx, "k", payload{Count: 2, Name: "x"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Count != 2 || got.Name != "x" {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	var got string
	if err := c.Get(ctx, "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	if err := c.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	var got string
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestMemoryCacheTryLock(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	ok, err := c.TryLock(ctx, "lock", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}

	ok, err = c.TryLock(ctx, "lock", time.Minute)
	if err != nil || ok {
		t.Fatalf("second lock should fail: ok=%v err=%v", ok, err)
	}

	if err := c.Unlock(ctx, "lock"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	ok, err = c.TryLock(ctx, "lock", time.Minute)
	if err != nil || !ok {
		t.Fatalf("relock after unlock: ok=%v err=%v", ok, err)
	}
}
