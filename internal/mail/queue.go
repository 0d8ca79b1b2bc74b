// Eyedea | 2026
// queue.go

package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const sendTimeout = 15 * time.Second

// Queue decouples request handling from email delivery. A single worker
// drains a bounded channel; when the channel is full new emails are
// dropped and logged rather than blocking the request path.
type Queue struct {
	sender Sender
	logger *slog.Logger

	ch        chan Email
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewQueue(sender Sender, size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = 256
	}

	q := &Queue{
		sender: sender,
		logger: logger,
		ch:     make(chan Email, size),
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for email := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := q.sender.Send(ctx, email)
		cancel()

		if err != nil {
			q.logger.Error("email delivery failed",
				"to", email.To,
				"subject", email.Subject,
				"error", err,
			)
		}
	}
}

// Enqueue never blocks. Notification email is best-effort; a full queue
// drops the message.
func (q *Queue) Enqueue(email Email) {
	select {
	case q.ch <- email:
	default:
		q.logger.Warn("email queue full, dropping message",
			"to", email.To,
			"subject", email.Subject,
		)
	}
}

// Close stops accepting new emails and waits for the worker to drain
// pending ones, or for ctx to expire.
func (q *Queue) Close(ctx context.Context) error {
	q.closeOnce.Do(func() {
		close(q.ch)
	})

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
