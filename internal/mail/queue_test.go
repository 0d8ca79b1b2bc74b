// Eyedea | 2026
// queue_test.go

package mail

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Email
}

func (s *captureSender) Send(_ context.Context, email Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, email)
	return nil
}

func (s *captureSender) Sent() []Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Email(nil), s.sent...)
}

// blockingSender parks in Send until released, so tests can fill the
// queue deterministically.
type blockingSender struct {
	captureSender
	started chan struct{}
	release chan struct{}
}

func (s *blockingSender) Send(ctx context.Context, email Email) error {
	s.started <- struct{}{}
	<-s.release
	return s.captureSender.Send(ctx, email)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueueDeliversInOrder(t *testing.T) {
	sender := &captureSender{}
	queue := NewQueue(sender, 8, discardLogger())

	queue.Enqueue(Email{To: "a@philtech.com", Subject: "first"})
	queue.Enqueue(Email{To: "b@philtech.com", Subject: "second"})
	queue.Enqueue(Email{To: "c@philtech.com", Subject: "third"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, queue.Close(ctx))

	sent := sender.Sent()
	require.Len(t, sent, 3)
	require.Equal(t, "first", sent[0].Subject)
	require.Equal(t, "second", sent[1].Subject)
	require.Equal(t, "third", sent[2].Subject)
}

func TestQueueDropsWhenFull(t *testing.T) {
	sender := &blockingSender{
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	queue := NewQueue(sender, 1, discardLogger())

	queue.Enqueue(Email{To: "a@philtech.com", Subject: "in flight"})
	// Wait until the worker is parked inside Send before filling the
	// buffer, otherwise the test races the drain.
	select {
	case <-sender.started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first email")
	}

	queue.Enqueue(Email{To: "b@philtech.com", Subject: "buffered"})
	queue.Enqueue(Email{To: "c@philtech.com", Subject: "dropped"})

	close(sender.release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, queue.Close(ctx))

	sent := sender.Sent()
	require.Len(t, sent, 2)
	require.Equal(t, "in flight", sent[0].Subject)
	require.Equal(t, "buffered", sent[1].Subject)
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	queue := NewQueue(&captureSender{}, 4, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, queue.Close(ctx))
	require.NoError(t, queue.Close(ctx))
}

func TestWithRecipient(t *testing.T) {
	base := IdeaApproved("user1", "EYE-00001", "Automate Invoice Processing")
	require.Empty(t, base.To)

	addressed := base.WithRecipient("user1@philtech.com")
	require.Equal(t, "user1@philtech.com", addressed.To)
	require.Empty(t, base.To)
	require.Contains(t, addressed.Subject, "EYE-00001")
	require.Contains(t, addressed.HTML, "Automate Invoice Processing")
}
