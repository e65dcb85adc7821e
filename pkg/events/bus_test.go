package events

import (
	"context"
	"testing"
)

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TopicCartUpdated, func(ctx context.Context, sessionID string) {
		got = append(got, "first:"+sessionID)
	})
	bus.Subscribe(TopicCartUpdated, func(ctx context.Context, sessionID string) {
		got = append(got, "second:"+sessionID)
	})
	bus.Subscribe(TopicSavedUpdated, func(ctx context.Context, sessionID string) {
		t.Fatal("saved handler should not fire for cart topic")
	})

	bus.Publish(context.Background(), TopicCartUpdated, "sess-1")

	if len(got) != 2 || got[0] != "first:sess-1" || got[1] != "second:sess-1" {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	bus.Publish(context.Background(), TopicCartUpdated, "sess-1")
}

func TestSubscribeNilHandlerIgnored(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TopicCartUpdated, nil)
	bus.Publish(context.Background(), TopicCartUpdated, "sess-1")
}
