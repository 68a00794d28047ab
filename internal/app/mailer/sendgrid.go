package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"accountd/internal/pkg/logx"
)

// SendGridSender delivers messages through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender constructs a sender using the given API key and from address.
func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

var _ Sender = (*SendGridSender)(nil)

// Send delivers one message. Non-2xx provider responses are reported as errors.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	email := mail.NewSingleEmailPlainText(
		mail.NewEmail("", s.from),
		msg.Subject,
		mail.NewEmail(msg.Name, msg.To),
		msg.Body,
	)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

// LogSender is the development fallback used when no SendGrid API key is
// configured: it records the message in the log and reports success.
type LogSender struct{}

var _ Sender = LogSender{}

// Send logs the message instead of delivering it.
func (LogSender) Send(ctx context.Context, msg Message) error {
	logx.Info("Email delivery skipped (no sender configured)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
