package buynow

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/catalog"
	"github.com/Iphycodes/odg/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

type stubKV struct {
	data    map[string]string
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newStubKV() *stubKV {
	return &stubKV{data: map[string]string{}}
}

func (s *stubKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value.(string)
	s.lastTTL = ttl
	return nil
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubKV) BuyNowKey(sessionID string) string { return "odg:buynow:" + sessionID }

func newTestService(t *testing.T, kv *stubKV) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Store:   kv,
		Catalog: catalog.NewStore(catalog.Seed()),
		TTL:     24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestStageAndGet(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	svc := newTestService(t, kv)

	if !svc.Stage(ctx, "sess", "1") {
		t.Fatal("staging a catalog item should succeed")
	}
	if svc.Stage(ctx, "sess", "missing") {
		t.Error("staging an unknown item should fail")
	}

	item := svc.Get(ctx, "sess")
	if item == nil {
		t.Fatal("expected staged item")
	}
	if item.ItemID != "1" || item.Quantity != 1 {
		t.Errorf("unexpected snapshot: %+v", item)
	}
	if kv.lastTTL != 24*time.Hour {
		t.Errorf("expected session ttl on slot, got %v", kv.lastTTL)
	}

	// read is non-destructive
	if svc.Get(ctx, "sess") == nil {
		t.Error("second read should still return the item")
	}
}

func TestSetForcesQuantityAndOverwrites(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubKV())

	svc.Set(ctx, "sess", cart.ResolvedItem{ItemID: "a", Quantity: 5})
	svc.Set(ctx, "sess", cart.ResolvedItem{ItemID: "b", Quantity: 3})

	item := svc.Get(ctx, "sess")
	if item == nil {
		t.Fatal("expected staged item")
	}
	if item.ItemID != "b" {
		t.Errorf("last write should win, got %q", item.ItemID)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity should be forced to 1, got %d", item.Quantity)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubKV())

	svc.Stage(ctx, "sess", "1")
	svc.Clear(ctx, "sess")
	if svc.Get(ctx, "sess") != nil {
		t.Error("slot should be empty after clear")
	}
}

func TestDegradation(t *testing.T) {
	ctx := context.Background()

	t.Run("storage failure on read", func(t *testing.T) {
		kv := newStubKV()
		kv.getErr = errors.New("connection refused")
		svc := newTestService(t, kv)
		if svc.Get(ctx, "sess") != nil {
			t.Error("expected nil on storage failure")
		}
	})

	t.Run("storage failure on write", func(t *testing.T) {
		kv := newStubKV()
		kv.setErr = errors.New("connection refused")
		svc := newTestService(t, kv)
		svc.Set(ctx, "sess", cart.ResolvedItem{ItemID: "a"})
		if svc.Get(ctx, "sess") != nil {
			t.Error("slot should stay empty when the write failed")
		}
	})

	t.Run("corrupt payload", func(t *testing.T) {
		kv := newStubKV()
		kv.data["odg:buynow:sess"] = "[not json"
		svc := newTestService(t, kv)
		if svc.Get(ctx, "sess") != nil {
			t.Error("expected nil on corrupt payload")
		}
	})
}
