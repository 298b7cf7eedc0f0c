// Package notification provides event handlers for sending receipt and
// feedback emails in response to domain events. This module subscribes to
// events and inverts the dependency: domain modules never touch email
// providers, PDF rendering, or object storage.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"checkout_backend/internal/email"
	"checkout_backend/internal/events"
	"checkout_backend/internal/pdf"
	"checkout_backend/platform/config"
	"checkout_backend/platform/logger"
)

// PDFConverter turns an HTML document into PDF bytes.
type PDFConverter interface {
	ConvertHTML(ctx context.Context, indexHTML []byte, opts pdf.ConvertOpts) ([]byte, error)
}

// ReceiptArchiver stores issued receipt PDFs for bookkeeping.
type ReceiptArchiver interface {
	UploadFile(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)
}

// Module handles checkout and feedback event subscriptions.
type Module struct {
	sender    email.Sender
	converter PDFConverter // nil when Gotenberg is not configured
	archiver  ReceiptArchiver
	bucket    string
	cfg       config.StoreConfig
	log       *logger.Logger
}

// New creates a new notification module. converter and archiver are optional;
// pass nil to skip PDF generation or archiving.
func New(sender email.Sender, converter PDFConverter, archiver ReceiptArchiver, bucket string, cfg config.StoreConfig, log *logger.Logger) *Module {
	return &Module{
		sender:    sender,
		converter: converter,
		archiver:  archiver,
		bucket:    bucket,
		cfg:       cfg,
		log:       log,
	}
}

// RegisterHandlers subscribes this module to all events it cares about.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.CheckoutCompleted{}.EventName(), m)
	bus.Subscribe(events.FeedbackSubmitted{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CheckoutCompleted:
		return m.handleCheckoutCompleted(ctx, e)
	case events.FeedbackSubmitted:
		return m.handleFeedbackSubmitted(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// handleCheckoutCompleted renders the receipt, converts it to PDF when a
// converter is configured, archives the PDF when storage is configured, and
// emails the receipt to the customer. Every step after the email render is
// best-effort: a broken PDF pipeline must not lose the receipt email.
func (m *Module) handleCheckoutCompleted(ctx context.Context, e events.CheckoutCompleted) error {
	currency := m.cfg.GetCurrencySymbol()
	issuedAt := e.IssuedAt.Format("2006-01-02 15:04")

	receipt := email.ReceiptEmail{
		StoreName:      m.cfg.GetStoreName(),
		ReceiptNumber:  e.ReceiptNumber,
		IssuedAt:       issuedAt,
		TotalFormatted: formatAmount(currency, e.Total),
	}
	for _, item := range e.Items {
		receipt.Lines = append(receipt.Lines, email.ReceiptLine{
			Name:      item.Name,
			Weight:    item.Weight,
			Price:     formatAmount(currency, item.Price),
			Freshness: item.Freshness,
		})
	}

	var attachments []email.Attachment
	if pdfBytes := m.generateReceiptPDF(ctx, e, currency, issuedAt); len(pdfBytes) > 0 {
		fileName := fmt.Sprintf("receipt-%s.pdf", e.ReceiptNumber)
		attachments = append(attachments, email.Attachment{
			Content:  pdfBytes,
			FileName: fileName,
			MIMEType: "application/pdf",
		})
		m.archiveReceiptPDF(ctx, e, fileName, pdfBytes)
	}

	if err := m.sender.SendReceiptEmail(ctx, e.CustomerEmail, receipt, attachments...); err != nil {
		m.log.EmailEvent("receipt", e.CustomerEmail, err)
		return fmt.Errorf("send receipt email %s: %w", e.ReceiptNumber, err)
	}
	m.log.EmailEvent("receipt", e.CustomerEmail, nil)
	return nil
}

// handleFeedbackSubmitted thanks the customer by email when they left an
// address. Anonymous feedback produces no mail.
func (m *Module) handleFeedbackSubmitted(ctx context.Context, e events.FeedbackSubmitted) error {
	if e.CustomerEmail == "" {
		return nil
	}
	if err := m.sender.SendFeedbackThankYouEmail(ctx, e.CustomerEmail, m.cfg.GetStoreName(), e.Rating); err != nil {
		m.log.EmailEvent("feedback_thanks", e.CustomerEmail, err)
		return fmt.Errorf("send feedback thank-you email: %w", err)
	}
	m.log.EmailEvent("feedback_thanks", e.CustomerEmail, nil)
	return nil
}

// generateReceiptPDF returns nil when no converter is configured or the
// conversion fails; failures are logged, never fatal.
func (m *Module) generateReceiptPDF(ctx context.Context, e events.CheckoutCompleted, currency, issuedAt string) []byte {
	if m.converter == nil {
		return nil
	}

	data := pdf.ReceiptData{
		StoreName:     m.cfg.GetStoreName(),
		ReceiptNumber: e.ReceiptNumber,
		IssuedAt:      issuedAt,
		CustomerEmail: e.CustomerEmail,
		Total:         formatAmount(currency, e.Total),
	}
	for _, item := range e.Items {
		data.Lines = append(data.Lines, pdf.ReceiptLine{
			Name:      item.Name,
			Freshness: item.Freshness,
			Weight:    fmt.Sprintf("%.0f", item.Weight),
			Price:     formatAmount(currency, item.Price),
		})
	}

	html, err := pdf.RenderReceiptHTML(data)
	if err != nil {
		m.log.Error("render receipt document failed", "receipt", e.ReceiptNumber, "error", err)
		return nil
	}

	convertCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	pdfBytes, err := m.converter.ConvertHTML(convertCtx, html, pdf.ReceiptOpts())
	if err != nil {
		m.log.Error("receipt pdf conversion failed", "receipt", e.ReceiptNumber, "error", err)
		return nil
	}
	return pdfBytes
}

// archiveReceiptPDF is best-effort; failures are logged, never fatal.
func (m *Module) archiveReceiptPDF(ctx context.Context, e events.CheckoutCompleted, fileName string, pdfBytes []byte) {
	if m.archiver == nil {
		return
	}
	folder := e.IssuedAt.UTC().Format("2006/01")
	key, err := m.archiver.UploadFile(ctx, m.bucket, folder, fileName, "application/pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		m.log.Error("receipt pdf archive failed", "receipt", e.ReceiptNumber, "error", err)
		return
	}
	m.log.Info("receipt pdf archived", "receipt", e.ReceiptNumber, "file_key", key)
}

func formatAmount(currency string, amount float64) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}
