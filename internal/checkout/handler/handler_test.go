package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"checkout_backend/internal/catalog/store"
	"checkout_backend/internal/checkout/service"
	"checkout_backend/internal/events"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/validator"
)

type staticCatalog struct {
	view []store.Item
}

func (c staticCatalog) ValidView() []store.Item { return c.view }

type nullBus struct{}

func (nullBus) Publish(context.Context, events.Event) {}
func (nullBus) PublishSync(context.Context, events.Event) error {
	return nil
}
func (nullBus) Subscribe(string, events.Handler) {}

func newTestRouter(view []store.Item) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(staticCatalog{view: view}, nullBus{}, logger.New("development"))
	h := New(svc, validator.New())

	engine := gin.New()
	engine.POST("/api/v1/checkout", h.Checkout)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCheckout(t *testing.T) {
	engine := newTestRouter([]store.Item{
		{Name: "apple", Weight: 10, Price: 2.5, Freshness: "fresh"},
		{Name: "bread", Weight: 400, Price: 3.2, Freshness: "fresh"},
	})

	rec := doRequest(t, engine, `{"email":"customer@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var receipt service.Receipt
	if err := json.Unmarshal(rec.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if receipt.Total != 5.7 {
		t.Fatalf("expected total 5.7, got %v", receipt.Total)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(receipt.Items))
	}
	if receipt.Number == "" {
		t.Fatal("expected a receipt number")
	}
}

func TestCheckoutRequiresEmail(t *testing.T) {
	engine := newTestRouter(nil)

	for _, body := range []string{`{}`, `{"email":"not-an-email"}`} {
		rec := doRequest(t, engine, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestCheckoutMalformedBody(t *testing.T) {
	engine := newTestRouter(nil)

	rec := doRequest(t, engine, `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
