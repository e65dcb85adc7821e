package events

import (
	"context"
	"sync"
)

// Topics broadcast by the storefront stores.
const (
	TopicCartUpdated  = "cart.updated"
	TopicSavedUpdated = "saved.updated"
)

// Handler receives a broadcast for a topic. Handlers run synchronously on
// the publishing goroutine, after the triggering write has completed.
type Handler func(ctx context.Context, sessionID string)

// Bus is a process-wide, synchronous change-notification broadcaster.
// UI-facing consumers (badge counters, websockets) subscribe by topic.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus builds an empty broadcaster.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the given topic.
func (b *Bus) Subscribe(topic string, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish invokes every handler registered for the topic, in subscription
// order, before returning.
func (b *Bus) Publish(ctx context.Context, topic, sessionID string) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx, sessionID)
	}
}
