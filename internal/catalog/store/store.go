// Package store owns the in-memory product catalog and its update-acceptance
// policy. The catalog is process-wide state with no persistence; it resets on
// restart.
package store

import (
	"math"
	"sync"

	"checkout_backend/platform/apperr"
)

const (
	// WeightThreshold is the hysteresis constant, in grams. An upsert for an
	// existing product is applied only when the weight moved by more than
	// this amount, so noisy scale readings do not re-trigger broadcasts.
	WeightThreshold = 5.0

	// MinVisibleWeight is the floor, in grams, below which a product is
	// excluded from the valid view. Very light residual readings (an item
	// lifted off the scale) are treated as not actually present without
	// deleting the underlying record.
	MinVisibleWeight = 2.0
)

// UpsertResult describes the outcome of an upsert.
type UpsertResult string

const (
	// Created means no record existed and one was inserted.
	Created UpsertResult = "created"
	// Updated means an existing record was replaced entirely.
	Updated UpsertResult = "updated"
	// Unchanged means the weight delta was within the threshold; the stored
	// record was left as-is. Not an error.
	Unchanged UpsertResult = "unchanged"
)

// RemoveResult describes the outcome of a removal.
type RemoveResult string

const (
	// Deleted means the record existed and was removed.
	Deleted RemoveResult = "deleted"
	// NotFound means no record existed for the name.
	NotFound RemoveResult = "not_found"
)

// Product is a catalog record. Presence in the catalog and visibility at
// checkout are distinct: a stored product may still be filtered out of the
// valid view.
type Product struct {
	Weight    float64
	Price     float64
	Freshness string
}

// Item is a valid-view entry: a product augmented with its name.
type Item struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Price     float64 `json:"price"`
	Freshness string  `json:"freshness"`
}

// Store is the in-memory catalog. The order slice records insertion order so
// ValidView is deterministic for a given catalog state.
type Store struct {
	mu    sync.RWMutex
	items map[string]Product
	order []string
}

// New creates an empty catalog store.
func New() *Store {
	return &Store{items: make(map[string]Product)}
}

// Upsert applies a scale reading for the named product.
//
// Negative weight or price is rejected outright. A new name is inserted. An
// existing record is replaced only when the weight moved by more than
// WeightThreshold grams; otherwise the reading is absorbed as Unchanged.
func (s *Store) Upsert(name string, weight, price float64, freshness string) (UpsertResult, error) {
	if weight < 0 {
		return "", apperr.Validation("weight must be >= 0")
	}
	if price < 0 {
		return "", apperr.Validation("price must be >= 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[name]
	if !ok {
		s.items[name] = Product{Weight: weight, Price: price, Freshness: freshness}
		s.order = append(s.order, name)
		return Created, nil
	}

	if math.Abs(weight-existing.Weight) <= WeightThreshold {
		return Unchanged, nil
	}

	s.items[name] = Product{Weight: weight, Price: price, Freshness: freshness}
	return Updated, nil
}

// Remove deletes the named product if present.
func (s *Store) Remove(name string) RemoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[name]; !ok {
		return NotFound
	}

	delete(s.items, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return Deleted
}

// Get returns the stored record for name, visible or not.
func (s *Store) Get(name string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[name]
	return p, ok
}

// Len returns the number of stored records, visible or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// ValidView returns the checkout-visible catalog: products weighing at least
// MinVisibleWeight grams with a non-negative price, in insertion order. The
// view is recomputed on every call, never stored.
func (s *Store) ValidView() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make([]Item, 0, len(s.order))
	for _, name := range s.order {
		p := s.items[name]
		if p.Weight < MinVisibleWeight || p.Price < 0 {
			continue
		}
		view = append(view, Item{
			Name:      name,
			Weight:    p.Weight,
			Price:     p.Price,
			Freshness: p.Freshness,
		})
	}
	return view
}
