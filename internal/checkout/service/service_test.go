package service

import (
	"context"
	"testing"

	"checkout_backend/internal/catalog/store"
	"checkout_backend/internal/events"
	"checkout_backend/platform/logger"
)

type staticCatalog struct {
	view []store.Item
}

func (c staticCatalog) ValidView() []store.Item { return c.view }

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func TestCheckoutSumsPrices(t *testing.T) {
	catalog := staticCatalog{view: []store.Item{
		{Name: "apple", Weight: 10, Price: 2.5, Freshness: "fresh"},
		{Name: "bread", Weight: 400, Price: 3.2, Freshness: "fresh"},
	}}
	bus := &recordingBus{}
	svc := New(catalog, bus, logger.New("development"))

	receipt := svc.Checkout(context.Background(), "customer@example.com")

	if receipt.Total != 5.7 {
		t.Fatalf("expected total 5.7, got %v", receipt.Total)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(receipt.Items))
	}
	if receipt.Email != "customer@example.com" {
		t.Fatalf("email mismatch: %s", receipt.Email)
	}
}

func TestCheckoutNumbersReceiptsSequentially(t *testing.T) {
	svc := New(staticCatalog{}, &recordingBus{}, logger.New("development"))

	first := svc.Checkout(context.Background(), "a@example.com")
	second := svc.Checkout(context.Background(), "b@example.com")

	if first.Number != "RCP-00001" {
		t.Fatalf("expected RCP-00001, got %s", first.Number)
	}
	if second.Number != "RCP-00002" {
		t.Fatalf("expected RCP-00002, got %s", second.Number)
	}
	if first.ID == second.ID {
		t.Fatal("receipt IDs must be unique")
	}
}

func TestCheckoutPublishesEvent(t *testing.T) {
	catalog := staticCatalog{view: []store.Item{
		{Name: "apple", Weight: 10, Price: 2.5, Freshness: "fresh"},
	}}
	bus := &recordingBus{}
	svc := New(catalog, bus, logger.New("development"))

	receipt := svc.Checkout(context.Background(), "customer@example.com")

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	completed, ok := bus.published[0].(events.CheckoutCompleted)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.published[0])
	}
	if completed.ReceiptNumber != receipt.Number {
		t.Fatalf("event receipt number mismatch: %s vs %s", completed.ReceiptNumber, receipt.Number)
	}
	if completed.CustomerEmail != "customer@example.com" {
		t.Fatalf("event email mismatch: %s", completed.CustomerEmail)
	}
	if len(completed.Items) != 1 || completed.Items[0].Name != "apple" {
		t.Fatalf("event items mismatch: %v", completed.Items)
	}
	if completed.Total != 2.5 {
		t.Fatalf("event total mismatch: %v", completed.Total)
	}
}

func TestCheckoutWithEmptyViewIssuesZeroReceipt(t *testing.T) {
	bus := &recordingBus{}
	svc := New(staticCatalog{}, bus, logger.New("development"))

	receipt := svc.Checkout(context.Background(), "customer@example.com")

	if receipt.Total != 0 {
		t.Fatalf("expected total 0, got %v", receipt.Total)
	}
	if len(receipt.Items) != 0 {
		t.Fatalf("expected no items, got %v", receipt.Items)
	}
	if len(bus.published) != 1 {
		t.Fatal("an empty sale still publishes its event")
	}
}
