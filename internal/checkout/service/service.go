// Package service issues receipts from the checkout-visible catalog.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"checkout_backend/internal/catalog/store"
	"checkout_backend/internal/events"
	"checkout_backend/platform/logger"
)

// CatalogReader is the read-only contract the catalog exposes to checkout.
// Receipt totals are computed over this view; checkout never mutates the
// catalog.
type CatalogReader interface {
	ValidView() []store.Item
}

// Receipt is the result of a confirmed payment: the valid view at checkout
// time plus the total, the sum of item prices.
type Receipt struct {
	ID       uuid.UUID    `json:"id"`
	Number   string       `json:"number"`
	Email    string       `json:"email"`
	Items    []store.Item `json:"items"`
	Total    float64      `json:"total"`
	IssuedAt time.Time    `json:"issuedAt"`
}

// Service snapshots the valid view on payment confirmation and hands the
// receipt to the notification module via the event bus. Delivery is
// fire-and-forget; the HTTP response never waits for the email.
type Service struct {
	catalog CatalogReader
	bus     events.Bus
	log     *logger.Logger
	seq     atomic.Uint64
}

// New creates the checkout service.
func New(catalog CatalogReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{catalog: catalog, bus: bus, log: log}
}

// Checkout issues a receipt for the current valid view. An empty view yields
// an empty receipt with total 0; that is a valid sale of nothing, not an
// error.
func (s *Service) Checkout(ctx context.Context, email string) Receipt {
	items := s.catalog.ValidView()

	var total float64
	for _, item := range items {
		total += item.Price
	}

	receipt := Receipt{
		ID:       uuid.New(),
		Number:   fmt.Sprintf("RCP-%05d", s.seq.Add(1)),
		Email:    email,
		Items:    items,
		Total:    total,
		IssuedAt: time.Now().UTC(),
	}

	eventItems := make([]events.ReceiptItem, 0, len(items))
	for _, item := range items {
		eventItems = append(eventItems, events.ReceiptItem{
			Name:      item.Name,
			Weight:    item.Weight,
			Price:     item.Price,
			Freshness: item.Freshness,
		})
	}

	s.bus.Publish(ctx, events.CheckoutCompleted{
		BaseEvent:     events.NewBaseEvent(),
		ReceiptID:     receipt.ID,
		ReceiptNumber: receipt.Number,
		CustomerEmail: receipt.Email,
		Items:         eventItems,
		Total:         receipt.Total,
		IssuedAt:      receipt.IssuedAt,
	})

	s.log.Info("receipt issued",
		"receipt", receipt.Number,
		"items", len(receipt.Items),
		"total", receipt.Total,
	)
	return receipt
}
