// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"checkout_backend/platform/events"
	"checkout_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = func(log *logger.Logger) *InMemoryBus { return events.NewInMemoryBus(log) }
)

// =============================================================================
// Checkout Domain Events
// =============================================================================

// ReceiptItem is a checkout line carried on checkout events.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Price     float64 `json:"price"`
	Freshness string  `json:"freshness"`
}

// CheckoutCompleted is published when a payment is confirmed and a receipt
// has been issued. The notification module delivers the receipt email.
type CheckoutCompleted struct {
	BaseEvent
	ReceiptID     uuid.UUID     `json:"receiptId"`
	ReceiptNumber string        `json:"receiptNumber"`
	CustomerEmail string        `json:"customerEmail"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
	IssuedAt      time.Time     `json:"issuedAt"`
}

func (e CheckoutCompleted) EventName() string { return "checkout.completed" }

// =============================================================================
// Feedback Domain Events
// =============================================================================

// FeedbackSubmitted is published when a customer records satisfaction feedback.
type FeedbackSubmitted struct {
	BaseEvent
	FeedbackID    uuid.UUID `json:"feedbackId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
}

func (e FeedbackSubmitted) EventName() string { return "feedback.submitted" }
