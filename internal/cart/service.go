package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Iphycodes/odg/internal/catalog"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/events"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/metrics"
	pkgredis "github.com/Iphycodes/odg/pkg/redis"
)

type keyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

type notifier interface {
	Publish(ctx context.Context, topic, sessionID string)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Logger  *logger.Logger
	Store   keyValueStore
	Catalog catalog.Finder
	Events  notifier
	Metrics *metrics.StorefrontMetrics
}

// Service exposes the per-session shopping cart. Reads never fail: a
// storage error or corrupt payload degrades to an empty cart, logged but
// not surfaced. Every mutation persists first, then notifies subscribers.
type Service interface {
	Load(ctx context.Context, sessionID string) []Entry
	AddItem(ctx context.Context, sessionID, itemID string) bool
	RemoveItem(ctx context.Context, sessionID, itemID string)
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int)
	Clear(ctx context.Context, sessionID string)
	ResolvedItems(ctx context.Context, sessionID string) []ResolvedItem
	Total(ctx context.Context, sessionID string) int64
	Count(ctx context.Context, sessionID string) int
	Contains(ctx context.Context, sessionID, itemID string) bool
}

type service struct {
	logg    *logger.Logger
	store   keyValueStore
	catalog catalog.Finder
	events  notifier
	metrics *metrics.StorefrontMetrics
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "key-value store is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog finder is required")
	}
	return &service{
		logg:    params.Logger,
		store:   params.Store,
		catalog: params.Catalog,
		events:  params.Events,
		metrics: params.Metrics,
	}, nil
}

// Load returns the persisted entries for the session, or an empty list.
func (s *service) Load(ctx context.Context, sessionID string) []Entry {
	return s.load(ctx, sessionID)
}

// AddItem increments the entry for itemID by one, inserting a new entry at
// quantity 1 when absent. The increment is capped at the item's stock
// quantity; hitting the cap leaves the cart unchanged and returns false.
func (s *service) AddItem(ctx context.Context, sessionID, itemID string) bool {
	if itemID == "" {
		return false
	}
	entries := s.load(ctx, sessionID)
	limit := s.maxQuantity(itemID)

	for i := range entries {
		if entries[i].ItemID != itemID {
			continue
		}
		if limit != nil && entries[i].Quantity >= *limit {
			return false
		}
		entries[i].Quantity++
		s.persist(ctx, sessionID, entries, "add")
		return true
	}

	quantity := 1
	if limit != nil && *limit < 1 {
		quantity = *limit
	}
	entries = append(entries, Entry{ItemID: itemID, Quantity: quantity})
	s.persist(ctx, sessionID, entries, "add")
	return true
}

// RemoveItem drops the entry for itemID if present.
func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) {
	entries := s.load(ctx, sessionID)
	kept := entries[:0]
	removed := false
	for _, entry := range entries {
		if entry.ItemID == itemID {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return
	}
	s.persist(ctx, sessionID, kept, "remove")
}

// SetQuantity sets the entry's quantity, clamped to the item's stock
// quantity. A quantity of zero or less removes the entry.
func (s *service) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, sessionID, itemID)
		return
	}
	if limit := s.maxQuantity(itemID); limit != nil && quantity > *limit {
		quantity = *limit
	}
	entries := s.load(ctx, sessionID)
	for i := range entries {
		if entries[i].ItemID != itemID {
			continue
		}
		entries[i].Quantity = quantity
		s.persist(ctx, sessionID, entries, "set_quantity")
		return
	}
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) {
	if err := s.store.Del(ctx, s.store.CartKey(sessionID)); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "clearing cart failed")
		return
	}
	s.metrics.IncCartOp("clear")
	s.notify(ctx, sessionID)
}

// ResolvedItems joins entries against the catalog. Entries whose item no
// longer resolves are excluded; they stay in storage until removed.
func (s *service) ResolvedItems(ctx context.Context, sessionID string) []ResolvedItem {
	entries := s.load(ctx, sessionID)
	resolved := make([]ResolvedItem, 0, len(entries))
	for _, entry := range entries {
		item, ok := s.catalog.FindItemByID(entry.ItemID)
		if !ok {
			continue
		}
		resolved = append(resolved, Resolve(entry, item))
	}
	return resolved
}

// Total sums unit price times quantity over resolved items, in kobo.
func (s *service) Total(ctx context.Context, sessionID string) int64 {
	var total int64
	for _, item := range s.ResolvedItems(ctx, sessionID) {
		total += item.Subtotal()
	}
	return total
}

// Count sums quantities over raw entries, so the badge reflects intent
// even when an item has dropped out of the catalog.
func (s *service) Count(ctx context.Context, sessionID string) int {
	var count int
	for _, entry := range s.load(ctx, sessionID) {
		count += entry.Quantity
	}
	return count
}

// Contains reports whether an entry exists for itemID, resolved or not.
func (s *service) Contains(ctx context.Context, sessionID, itemID string) bool {
	for _, entry := range s.load(ctx, sessionID) {
		if entry.ItemID == itemID {
			return true
		}
	}
	return false
}

func (s *service) load(ctx context.Context, sessionID string) []Entry {
	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if !pkgredis.IsMissing(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "loading cart failed")
		}
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "corrupt cart payload, treating as empty")
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	return entries
}

func (s *service) persist(ctx context.Context, sessionID string, entries []Entry, op string) {
	payload, err := json.Marshal(entries)
	if err != nil {
		s.logg.Error(ctx, "encoding cart entries failed", err)
		return
	}
	if err := s.store.Set(ctx, s.store.CartKey(sessionID), string(payload), 0); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "persisting cart failed")
		return
	}
	s.metrics.IncCartOp(op)
	s.notify(ctx, sessionID)
}

func (s *service) notify(ctx context.Context, sessionID string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, events.TopicCartUpdated, sessionID)
}

func (s *service) maxQuantity(itemID string) *int {
	item, ok := s.catalog.FindItemByID(itemID)
	if !ok {
		return nil
	}
	return item.StockQuantity
}
