package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"checkout_backend/platform/config"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	timeout   time.Duration
}

// NewSender returns the configured Sender: an SMTPSender when email is
// enabled, a NoopSender otherwise.
func NewSender(cfg interface {
	config.EmailConfig
	config.SMTPConfig
}) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	if cfg.GetSMTPHost() == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when email is enabled")
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		timeout:   cfg.GetSMTPTimeout(),
	}, nil
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.timeout),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendReceiptEmail(ctx context.Context, toEmail string, receipt ReceiptEmail, attachments ...Attachment) error {
	content, err := renderEmailTemplate("receipt.html", receiptEmailData{
		baseEmailData: baseEmailData{
			Title:   fmt.Sprintf("Receipt %s", receipt.ReceiptNumber),
			Heading: "Thank you for your purchase",
		},
		Receipt:        receipt,
		HasAttachments: len(attachments) > 0,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectReceiptFmt, receipt.ReceiptNumber, receipt.StoreName)
	return s.send(ctx, toEmail, subject, content, attachments...)
}

func (s *SMTPSender) SendFeedbackThankYouEmail(ctx context.Context, toEmail, storeName string, rating int) error {
	content, err := renderEmailTemplate("feedback_thanks.html", feedbackThanksEmailData{
		baseEmailData: baseEmailData{
			Title:   "Thank you for your feedback",
			Heading: "Thank you for your feedback",
		},
		StoreName: storeName,
		Rating:    rating,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectFeedbackThankYou, content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}
