// Package saved persists a shopper's saved-for-later item ids.
package saved

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/events"
	"github.com/Iphycodes/odg/pkg/logger"
	pkgredis "github.com/Iphycodes/odg/pkg/redis"
)

type keyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SavedKey(sessionID string) string
}

type notifier interface {
	Publish(ctx context.Context, topic, sessionID string)
}

// ServiceParams groups dependencies for the saved-items service.
type ServiceParams struct {
	Logger *logger.Logger
	Store  keyValueStore
	Events notifier
}

// Service manages the per-session saved-items set. Like the cart, reads
// degrade to empty and mutations notify subscribers after persisting.
type Service interface {
	List(ctx context.Context, sessionID string) []string
	Add(ctx context.Context, sessionID, itemID string)
	Remove(ctx context.Context, sessionID, itemID string)
	Toggle(ctx context.Context, sessionID, itemID string) bool
	Contains(ctx context.Context, sessionID, itemID string) bool
}

type service struct {
	logg   *logger.Logger
	store  keyValueStore
	events notifier
}

// NewService builds a saved-items service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "key-value store is required")
	}
	return &service{
		logg:   params.Logger,
		store:  params.Store,
		events: params.Events,
	}, nil
}

// List returns the saved item ids in insertion order.
func (s *service) List(ctx context.Context, sessionID string) []string {
	return s.load(ctx, sessionID)
}

// Add appends itemID to the set if not already present.
func (s *service) Add(ctx context.Context, sessionID, itemID string) {
	if itemID == "" {
		return
	}
	ids := s.load(ctx, sessionID)
	for _, id := range ids {
		if id == itemID {
			return
		}
	}
	s.persist(ctx, sessionID, append(ids, itemID))
}

// Remove drops itemID from the set if present.
func (s *service) Remove(ctx context.Context, sessionID, itemID string) {
	ids := s.load(ctx, sessionID)
	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == itemID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return
	}
	s.persist(ctx, sessionID, kept)
}

// Toggle flips membership and reports the new state: true when the item
// is now saved.
func (s *service) Toggle(ctx context.Context, sessionID, itemID string) bool {
	if s.Contains(ctx, sessionID, itemID) {
		s.Remove(ctx, sessionID, itemID)
		return false
	}
	s.Add(ctx, sessionID, itemID)
	return true
}

// Contains reports membership.
func (s *service) Contains(ctx context.Context, sessionID, itemID string) bool {
	for _, id := range s.load(ctx, sessionID) {
		if id == itemID {
			return true
		}
	}
	return false
}

func (s *service) load(ctx context.Context, sessionID string) []string {
	raw, err := s.store.Get(ctx, s.store.SavedKey(sessionID))
	if err != nil {
		if !pkgredis.IsMissing(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "loading saved items failed")
		}
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "corrupt saved-items payload, treating as empty")
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

func (s *service) persist(ctx context.Context, sessionID string, ids []string) {
	payload, err := json.Marshal(ids)
	if err != nil {
		s.logg.Error(ctx, "encoding saved items failed", err)
		return
	}
	if err := s.store.Set(ctx, s.store.SavedKey(sessionID), string(payload), 0); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "persisting saved items failed")
		return
	}
	if s.events != nil {
		s.events.Publish(ctx, events.TopicSavedUpdated, sessionID)
	}
}
