package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"checkout_backend/internal/catalog/service"
	"checkout_backend/internal/catalog/store"
	"checkout_backend/internal/catalog/transport"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/validator"
)

type nullBroadcaster struct{}

func (nullBroadcaster) Broadcast([]store.Item) {}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(store.New(), nullBroadcaster{}, logger.New("development"))
	h := New(svc, validator.New())

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	v1.POST("/products", h.UpsertProduct)
	v1.GET("/products", h.ListProducts)
	v1.DELETE("/products/:name", h.RemoveProduct)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestUpsertProduct(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"apple","weight":10,"price":2.5,"freshness":"fresh"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.UpsertProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "created" {
		t.Fatalf("expected created, got %s", resp.Status)
	}
	if resp.Product == nil || resp.Product.Name != "apple" {
		t.Fatalf("expected product echo, got %+v", resp.Product)
	}
}

func TestUpsertProductUnchangedOmitsProduct(t *testing.T) {
	engine := newTestRouter()

	doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"apple","weight":10,"price":2.5,"freshness":"fresh"}`)
	rec := doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"apple","weight":12,"price":2.5,"freshness":"fresh"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp transport.UpsertProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "unchanged" {
		t.Fatalf("expected unchanged, got %s", resp.Status)
	}
	if resp.Product != nil {
		t.Fatalf("unchanged result must not echo a product: %+v", resp.Product)
	}
}

func TestUpsertProductMalformedBody(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, "POST", "/api/v1/products", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpsertProductMissingFields(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, "POST", "/api/v1/products", `{"name":"apple"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}
}

func TestUpsertProductNegativeWeight(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"apple","weight":-1,"price":2.5,"freshness":"fresh"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative weight, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListProducts(t *testing.T) {
	engine := newTestRouter()

	doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"apple","weight":10,"price":2.5,"freshness":"fresh"}`)
	// weight below the visibility floor: stored but filtered out
	doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"rice","weight":1,"price":5,"freshness":"dry"}`)

	rec := doRequest(t, engine, "GET", "/api/v1/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view []store.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view) != 1 || view[0].Name != "apple" {
		t.Fatalf("expected only apple visible, got %v", view)
	}
}

func TestRemoveProduct(t *testing.T) {
	engine := newTestRouter()

	doRequest(t, engine, "POST", "/api/v1/products",
		`{"name":"apple","weight":10,"price":2.5,"freshness":"fresh"}`)

	rec := doRequest(t, engine, "DELETE", "/api/v1/products/apple", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp transport.RemoveProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "deleted" || resp.Name != "apple" {
		t.Fatalf("response mismatch: %+v", resp)
	}
}

func TestRemoveProductNotFound(t *testing.T) {
	engine := newTestRouter()

	rec := doRequest(t, engine, "DELETE", "/api/v1/products/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
