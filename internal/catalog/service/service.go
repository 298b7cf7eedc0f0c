// Package service orchestrates catalog mutations and their broadcasts.
package service

import (
	"checkout_backend/internal/catalog/store"
	"checkout_backend/platform/apperr"
	"checkout_backend/platform/logger"
)

// Broadcaster pushes a valid-view snapshot to every live subscriber.
// Implemented by the stream module; a write failure there never surfaces here.
type Broadcaster interface {
	Broadcast(view []store.Item)
}

// Service applies catalog mutations and triggers a broadcast for every
// accepted one. Each broadcast carries the view computed after its mutation.
type Service struct {
	store       *store.Store
	broadcaster Broadcaster
	log         *logger.Logger
}

// New creates the catalog service.
func New(st *store.Store, broadcaster Broadcaster, log *logger.Logger) *Service {
	return &Service{store: st, broadcaster: broadcaster, log: log}
}

// Upsert applies a reading. Created and Updated results broadcast the new
// valid view; Unchanged is a no-op and stays silent.
func (s *Service) Upsert(name string, weight, price float64, freshness string) (store.UpsertResult, error) {
	result, err := s.store.Upsert(name, weight, price, freshness)
	if err != nil {
		return "", err
	}

	if result != store.Unchanged {
		view := s.store.ValidView()
		s.broadcaster.Broadcast(view)
		s.log.CatalogMutation("upsert", name, string(result), len(view))
	}
	return result, nil
}

// Remove deletes a product and broadcasts the view without it.
// Removing an absent product is a not-found error and stays silent.
func (s *Service) Remove(name string) error {
	if s.store.Remove(name) == store.NotFound {
		return apperr.NotFound("product not found")
	}

	view := s.store.ValidView()
	s.broadcaster.Broadcast(view)
	s.log.CatalogMutation("remove", name, string(store.Deleted), len(view))
	return nil
}

// ValidView exposes the checkout-visible catalog. This is the read-only
// contract consumed by checkout terminals and the receipt service; callers
// must not mutate the catalog through it.
func (s *Service) ValidView() []store.Item {
	return s.store.ValidView()
}
