// Eyedea | 2026
// mail.go

package mail

import (
	"context"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Email struct {
	To      string
	Subject string
	HTML    string
}

// WithRecipient returns a copy addressed to the given mailbox. The
// template helpers build subject and body; the caller knows who gets it.
func (e Email) WithRecipient(to string) Email {
	e.To = to
	return e
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

type resendSender struct {
	client *resend.Client
	from   string
}

// NewSender returns a Resend-backed sender, or a log-only sender when no
// API key is configured so local environments work without credentials.
func NewSender(apiKey, from string, logger *slog.Logger) Sender {
	if apiKey == "" {
		logger.Warn("no resend api key configured, emails will be logged only")
		return &logSender{logger: logger}
	}

	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *resendSender) Send(ctx context.Context, email Email) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	return err
}

type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(_ context.Context, email Email) error {
	s.logger.Info("email (not sent)",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}
