package saved

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Iphycodes/odg/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

type stubKV struct {
	data   map[string]string
	getErr error
}

func newStubKV() *stubKV {
	return &stubKV{data: map[string]string{}}
}

func (s *stubKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.data[key] = value.(string)
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

func (s *stubKV) SavedKey(sessionID string) string { return "odg:saved:" + sessionID }

type recordingNotifier struct {
	published []string
}

func (r *recordingNotifier) Publish(_ context.Context, topic, _ string) {
	r.published = append(r.published, topic)
}

func newTestService(t *testing.T, kv *stubKV, notifier *recordingNotifier) Service {
	t.Helper()
	params := ServiceParams{
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Store:  kv,
	}
	if notifier != nil {
		params.Events = notifier
	}
	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubKV(), nil)

	svc.Add(ctx, "sess", "laptop-1")
	svc.Add(ctx, "sess", "laptop-1")
	svc.Add(ctx, "sess", "laptop-2")

	ids := svc.List(ctx, "sess")
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	if ids[0] != "laptop-1" || ids[1] != "laptop-2" {
		t.Errorf("insertion order not preserved: %v", ids)
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubKV(), nil)

	if !svc.Toggle(ctx, "sess", "laptop-1") {
		t.Error("first toggle should save the item")
	}
	if !svc.Contains(ctx, "sess", "laptop-1") {
		t.Error("item should be saved")
	}
	if svc.Toggle(ctx, "sess", "laptop-1") {
		t.Error("second toggle should unsave the item")
	}
	if svc.Contains(ctx, "sess", "laptop-1") {
		t.Error("item should be removed")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := newTestService(t, newStubKV(), notifier)

	svc.Remove(ctx, "sess", "ghost")
	if len(notifier.published) != 0 {
		t.Error("removing an absent id should not notify")
	}
}

func TestMutationsNotify(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := newTestService(t, newStubKV(), notifier)

	svc.Add(ctx, "sess", "laptop-1")
	svc.Remove(ctx, "sess", "laptop-1")

	if len(notifier.published) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.published))
	}
	for _, topic := range notifier.published {
		if topic != "saved.updated" {
			t.Errorf("unexpected topic %q", topic)
		}
	}
}

func TestLoadDegradation(t *testing.T) {
	ctx := context.Background()

	t.Run("storage failure", func(t *testing.T) {
		kv := newStubKV()
		kv.getErr = errors.New("connection refused")
		svc := newTestService(t, kv, nil)
		if got := svc.List(ctx, "sess"); len(got) != 0 {
			t.Errorf("expected empty list, got %v", got)
		}
	})

	t.Run("corrupt payload", func(t *testing.T) {
		kv := newStubKV()
		kv.data["odg:saved:sess"] = "42"
		svc := newTestService(t, kv, nil)
		if got := svc.List(ctx, "sess"); len(got) != 0 {
			t.Errorf("expected empty list, got %v", got)
		}
	})
}
