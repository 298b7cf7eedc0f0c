// Package email renders and delivers outbound mail for the checkout backend.
package email

import "context"

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes
	FileName string // e.g. "receipt-RCP-00042.pdf"
	MIMEType string // e.g. "application/pdf"
}

// ReceiptLine is one purchased item as rendered on the receipt email.
type ReceiptLine struct {
	Name      string
	Weight    float64
	Price     string // pre-formatted with currency symbol
	Freshness string
}

// ReceiptEmail carries everything the receipt template needs.
type ReceiptEmail struct {
	StoreName      string
	ReceiptNumber  string
	IssuedAt       string
	Lines          []ReceiptLine
	TotalFormatted string
}

// Sender delivers checkout emails. Implementations must be safe for
// concurrent use; every method is called from event-handler goroutines.
type Sender interface {
	SendReceiptEmail(ctx context.Context, toEmail string, receipt ReceiptEmail, attachments ...Attachment) error
	SendFeedbackThankYouEmail(ctx context.Context, toEmail, storeName string, rating int) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender discards all mail. Used when email delivery is not configured.
type NoopSender struct{}

func (NoopSender) SendReceiptEmail(ctx context.Context, toEmail string, receipt ReceiptEmail, attachments ...Attachment) error {
	return nil
}

func (NoopSender) SendFeedbackThankYouEmail(ctx context.Context, toEmail, storeName string, rating int) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}
