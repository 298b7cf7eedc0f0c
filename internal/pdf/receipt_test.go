package pdf

import (
	"strings"
	"testing"
)

func TestRenderReceiptHTML(t *testing.T) {
	out, err := RenderReceiptHTML(ReceiptData{
		StoreName:     "Smart Checkout",
		ReceiptNumber: "RCP-00042",
		IssuedAt:      "2026-08-20 14:30",
		CustomerEmail: "customer@example.com",
		Lines: []ReceiptLine{
			{Name: "apple", Freshness: "fresh", Weight: "10", Price: "€2.50"},
			{Name: "bread", Freshness: "fresh", Weight: "400", Price: "€3.20"},
		},
		Total: "€5.70",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	for _, want := range []string{"RCP-00042", "apple", "bread", "€5.70", "customer@example.com"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered document missing %q", want)
		}
	}
}

func TestRenderReceiptHTMLEscapesContent(t *testing.T) {
	out, err := RenderReceiptHTML(ReceiptData{
		StoreName:     "Smart Checkout",
		ReceiptNumber: "RCP-00001",
		Lines: []ReceiptLine{
			{Name: "<script>alert(1)</script>", Freshness: "fresh", Weight: "10", Price: "€1.00"},
		},
		Total: "€1.00",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatal("item names must be HTML-escaped")
	}
}
