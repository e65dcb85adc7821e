// Package buynow holds the single-slot staging area for an immediate
// one-item purchase that bypasses the cart.
package buynow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/catalog"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
	pkgredis "github.com/Iphycodes/odg/pkg/redis"
)

type keyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	BuyNowKey(sessionID string) string
}

// ServiceParams groups dependencies for the buy-now service.
type ServiceParams struct {
	Logger  *logger.Logger
	Store   keyValueStore
	Catalog catalog.Finder
	TTL     time.Duration
}

// Service manages the per-session buy-now slot. Writes overwrite
// unconditionally, reads are non-destructive, and storage failures degrade
// to nil/no-op.
type Service interface {
	Stage(ctx context.Context, sessionID, itemID string) bool
	Set(ctx context.Context, sessionID string, item cart.ResolvedItem)
	Get(ctx context.Context, sessionID string) *cart.ResolvedItem
	Clear(ctx context.Context, sessionID string)
}

type service struct {
	logg    *logger.Logger
	store   keyValueStore
	catalog catalog.Finder
	ttl     time.Duration
}

// NewService builds a buy-now service with the required dependencies.
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
		ttl:     params.TTL,
	}, nil
}

// Stage resolves the item and fills the slot with a quantity-1 snapshot.
// Returns false when the item does not exist in the catalog.
func (s *service) Stage(ctx context.Context, sessionID, itemID string) bool {
	item, ok := s.catalog.FindItemByID(itemID)
	if !ok {
		return false
	}
	s.Set(ctx, sessionID, cart.Resolve(cart.Entry{ItemID: itemID, Quantity: 1}, item))
	return true
}

// Set overwrites the slot with the given snapshot. Last write wins; the
// quantity is always forced to 1.
func (s *service) Set(ctx context.Context, sessionID string, item cart.ResolvedItem) {
	item.Quantity = 1
	payload, err := json.Marshal(item)
	if err != nil {
		s.logg.Error(ctx, "encoding buy-now item failed", err)
		return
	}
	if err := s.store.Set(ctx, s.store.BuyNowKey(sessionID), string(payload), s.ttl); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "persisting buy-now item failed")
	}
}

// Get returns the staged item without clearing it, or nil when the slot is
// empty, corrupt, or the store is unavailable.
func (s *service) Get(ctx context.Context, sessionID string) *cart.ResolvedItem {
	raw, err := s.store.Get(ctx, s.store.BuyNowKey(sessionID))
	if err != nil {
		if !pkgredis.IsMissing(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "loading buy-now item failed")
		}
		return nil
	}
	var item cart.ResolvedItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "corrupt buy-now payload, treating as empty")
		return nil
	}
	return &item
}

// Clear empties the slot.
func (s *service) Clear(ctx context.Context, sessionID string) {
	if err := s.store.Del(ctx, s.store.BuyNowKey(sessionID)); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "clearing buy-now item failed")
	}
}
