package email

import (
	"strings"
	"testing"
)

func TestRenderReceiptTemplate(t *testing.T) {
	content, err := renderEmailTemplate("receipt.html", receiptEmailData{
		baseEmailData: baseEmailData{Title: "Receipt RCP-00042", Heading: "Thank you for your purchase"},
		Receipt: ReceiptEmail{
			StoreName:     "Smart Checkout",
			ReceiptNumber: "RCP-00042",
			IssuedAt:      "2026-08-20 14:30",
			Lines: []ReceiptLine{
				{Name: "apple", Weight: 10, Price: "€2.50", Freshness: "fresh"},
			},
			TotalFormatted: "€2.50",
		},
		HasAttachments: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"RCP-00042", "Smart Checkout", "apple", "€2.50", "attached"} {
		if !strings.Contains(content, want) {
			t.Fatalf("rendered receipt missing %q", want)
		}
	}
}

func TestRenderFeedbackThanksTemplate(t *testing.T) {
	content, err := renderEmailTemplate("feedback_thanks.html", feedbackThanksEmailData{
		baseEmailData: baseEmailData{Title: "Thank you", Heading: "Thank you for your feedback"},
		StoreName:     "Smart Checkout",
		Rating:        4,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(content, "Smart Checkout") || !strings.Contains(content, "4 out of 5") {
		t.Fatalf("rendered feedback mail incomplete: %s", content)
	}
}
