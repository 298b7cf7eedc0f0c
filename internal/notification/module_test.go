package notification

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"checkout_backend/internal/email"
	"checkout_backend/internal/events"
	"checkout_backend/internal/pdf"
	"checkout_backend/platform/logger"
)

type testStoreConfig struct{}

func (testStoreConfig) GetStoreName() string      { return "Smart Checkout" }
func (testStoreConfig) GetCurrencySymbol() string { return "€" }

type testSender struct {
	receipts       []email.ReceiptEmail
	receiptTo      string
	attachments    []email.Attachment
	thankYouCalls  int
	thankYouTo     string
	thankYouRating int
	receiptErr     error
}

func (s *testSender) SendReceiptEmail(_ context.Context, toEmail string, receipt email.ReceiptEmail, attachments ...email.Attachment) error {
	if s.receiptErr != nil {
		return s.receiptErr
	}
	s.receiptTo = toEmail
	s.receipts = append(s.receipts, receipt)
	s.attachments = append(s.attachments, attachments...)
	return nil
}

func (s *testSender) SendFeedbackThankYouEmail(_ context.Context, toEmail, _ string, rating int) error {
	s.thankYouCalls++
	s.thankYouTo = toEmail
	s.thankYouRating = rating
	return nil
}

func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

type testConverter struct {
	result []byte
	err    error
	calls  int
}

func (c *testConverter) ConvertHTML(context.Context, []byte, pdf.ConvertOpts) ([]byte, error) {
	c.calls++
	return c.result, c.err
}

type testArchiver struct {
	bucket   string
	folder   string
	fileName string
	size     int64
	err      error
}

func (a *testArchiver) UploadFile(_ context.Context, bucket, folder, fileName, _ string, _ io.Reader, size int64) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.bucket = bucket
	a.folder = folder
	a.fileName = fileName
	a.size = size
	return folder + "/" + fileName, nil
}

func checkoutEvent() events.CheckoutCompleted {
	return events.CheckoutCompleted{
		BaseEvent:     events.NewBaseEvent(),
		ReceiptID:     uuid.New(),
		ReceiptNumber: "RCP-00042",
		CustomerEmail: "customer@example.com",
		Items: []events.ReceiptItem{
			{Name: "apple", Weight: 10, Price: 2.5, Freshness: "fresh"},
			{Name: "bread", Weight: 400, Price: 3.2, Freshness: "fresh"},
		},
		Total:    5.7,
		IssuedAt: time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestCheckoutCompletedSendsReceiptEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, nil, "", testStoreConfig{}, logger.New("development"))

	if err := m.Handle(context.Background(), checkoutEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.receipts) != 1 {
		t.Fatalf("expected 1 receipt email, got %d", len(sender.receipts))
	}
	if sender.receiptTo != "customer@example.com" {
		t.Fatalf("wrong recipient: %s", sender.receiptTo)
	}
	receipt := sender.receipts[0]
	if receipt.ReceiptNumber != "RCP-00042" || receipt.StoreName != "Smart Checkout" {
		t.Fatalf("receipt header mismatch: %+v", receipt)
	}
	if receipt.TotalFormatted != "€5.70" {
		t.Fatalf("total format mismatch: %s", receipt.TotalFormatted)
	}
	if len(receipt.Lines) != 2 || receipt.Lines[0].Price != "€2.50" {
		t.Fatalf("lines mismatch: %+v", receipt.Lines)
	}
	if len(sender.attachments) != 0 {
		t.Fatal("no converter configured, so no attachment expected")
	}
}

func TestCheckoutCompletedAttachesAndArchivesPDF(t *testing.T) {
	sender := &testSender{}
	converter := &testConverter{result: []byte("%PDF-fake")}
	archiver := &testArchiver{}
	m := New(sender, converter, archiver, "receipt-pdfs", testStoreConfig{}, logger.New("development"))

	if err := m.Handle(context.Background(), checkoutEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if converter.calls != 1 {
		t.Fatalf("expected 1 conversion, got %d", converter.calls)
	}
	if len(sender.attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(sender.attachments))
	}
	att := sender.attachments[0]
	if att.FileName != "receipt-RCP-00042.pdf" || att.MIMEType != "application/pdf" {
		t.Fatalf("attachment mismatch: %+v", att)
	}
	if string(att.Content) != "%PDF-fake" {
		t.Fatalf("attachment content mismatch: %q", att.Content)
	}
	if archiver.bucket != "receipt-pdfs" || archiver.fileName != "receipt-RCP-00042.pdf" {
		t.Fatalf("archive call mismatch: %+v", archiver)
	}
	if archiver.folder != "2026/08" {
		t.Fatalf("archive folder mismatch: %s", archiver.folder)
	}
}

func TestCheckoutCompletedPDFFailureStillEmails(t *testing.T) {
	sender := &testSender{}
	converter := &testConverter{err: errors.New("gotenberg down")}
	m := New(sender, converter, nil, "", testStoreConfig{}, logger.New("development"))

	if err := m.Handle(context.Background(), checkoutEvent()); err != nil {
		t.Fatalf("pdf failure must not fail the email: %v", err)
	}
	if len(sender.receipts) != 1 {
		t.Fatal("receipt email must still be sent")
	}
	if len(sender.attachments) != 0 {
		t.Fatal("failed conversion must not attach anything")
	}
}

func TestCheckoutCompletedEmailFailureReturnsError(t *testing.T) {
	sender := &testSender{receiptErr: errors.New("smtp refused")}
	m := New(sender, nil, nil, "", testStoreConfig{}, logger.New("development"))

	if err := m.Handle(context.Background(), checkoutEvent()); err == nil {
		t.Fatal("expected send failure to surface")
	}
}

func TestFeedbackSubmittedSendsThankYou(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, nil, "", testStoreConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.FeedbackSubmitted{
		BaseEvent:     events.NewBaseEvent(),
		FeedbackID:    uuid.New(),
		Rating:        4,
		CustomerEmail: "customer@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.thankYouCalls != 1 || sender.thankYouTo != "customer@example.com" || sender.thankYouRating != 4 {
		t.Fatalf("thank-you call mismatch: %+v", sender)
	}
}

func TestFeedbackSubmittedAnonymousSendsNothing(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, nil, "", testStoreConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.FeedbackSubmitted{
		BaseEvent:  events.NewBaseEvent(),
		FeedbackID: uuid.New(),
		Rating:     2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.thankYouCalls != 0 {
		t.Fatal("anonymous feedback must not trigger mail")
	}
}
