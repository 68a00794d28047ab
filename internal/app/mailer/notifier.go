package mailer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"accountd/internal/pkg/logx"
)

// sendTimeout bounds a single delivery attempt. There are no retries; a
// failed attempt is logged and dropped.
const sendTimeout = 10 * time.Second

// Notifier dispatches account emails asynchronously.
type Notifier struct {
	sender Sender
	queue  chan Message
	wg     sync.WaitGroup
}

// NewNotifier constructs a Notifier with the given queue capacity and starts
// its delivery worker.
func NewNotifier(sender Sender, queueSize int) *Notifier {
	n := &Notifier{
		sender: sender,
		queue:  make(chan Message, queueSize),
	}

	n.wg.Add(1)
	go n.run()

	return n
}

// run is the delivery loop. It exits when the queue is closed by Shutdown.
func (n *Notifier) run() {
	defer n.wg.Done()

	for msg := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := n.sender.Send(ctx, msg); err != nil {
			logx.Error(err, "Failed to send notification email", "to", msg.To, "subject", msg.Subject)
		}
		cancel()
	}
}

// enqueue hands a message to the worker without blocking. If the queue is
// full the message is dropped and the drop is logged.
func (n *Notifier) enqueue(msg Message) {
	select {
	case n.queue <- msg:
	default:
		logx.Warn("Notification queue full, dropping email", "to", msg.To, "subject", msg.Subject)
	}
}

// Welcome queues the signup welcome email.
func (n *Notifier) Welcome(email, name string) {
	n.enqueue(Message{
		To:      email,
		Name:    name,
		Subject: "Welcome aboard!",
		Body:    fmt.Sprintf("Welcome to the app, %s. Let us know how you get along with it.", name),
	})
}

// AccountCanceled queues the account cancellation email.
func (n *Notifier) AccountCanceled(email, name string) {
	n.enqueue(Message{
		To:      email,
		Name:    name,
		Subject: "Sorry to see you go",
		Body:    fmt.Sprintf("Goodbye, %s. We hope to see you back sometime soon.", name),
	})
}

// Shutdown stops accepting new messages and waits for the worker to drain
// the queue, or for the context to expire.
func (n *Notifier) Shutdown(ctx context.Context) {
	close(n.queue)

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logx.Warn("Notifier shutdown timed out before the queue drained")
	}
}
