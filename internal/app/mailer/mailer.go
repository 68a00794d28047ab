/*
Package mailer sends transactional account emails (welcome and cancellation).

Delivery is fire-and-forget: the Notifier queues messages onto a buffered
channel consumed by a single worker goroutine, so the HTTP response path
never blocks on the email provider and never observes its failures. Send
errors and queue-full drops are logged, nothing more.
*/
package mailer

import "context"

// Message is one transactional email to deliver.
type Message struct {
	// To is the recipient address.
	To string

	// Name is the recipient's display name.
	Name string

	// Subject is the email subject line.
	Subject string

	// Body is the plain-text email body.
	Body string
}

// Sender delivers a single message to the email provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
