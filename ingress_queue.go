package kafkaproducer

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// ingressQueue is a bounded, producer-multiple/consumer-single FIFO with an
// explicit batched-take operation. The backing store is an
// github.com/eapache/queue ring buffer - the same structure sarama's own
// retryHandler bridges two channels with (async_producer.go's
// retryHandler/topicDispatcher pair) - guarded by a mutex, with a
// notification channel that is swapped out on every state change so that
// TakeBatch can select on "something happened" alongside a deadline timer
// and a cancel channel. Backpressure is a token semaphore: a buffered
// channel pre-loaded with capacity tokens, one consumed per Add and
// returned per dequeue.
type ingressQueue[T any] struct {
	mu     sync.Mutex
	buf    *queue.Queue
	sealed bool
	notify chan struct{}

	tokens chan struct{} // nil when unbounded
	sealCh chan struct{}
}

func newIngressQueue[T any](capacity int) *ingressQueue[T] {
	q := &ingressQueue[T]{
		buf:    queue.New(),
		notify: make(chan struct{}),
		sealCh: make(chan struct{}),
	}
	if capacity >= 0 {
		q.tokens = make(chan struct{}, capacity)
		for i := 0; i < capacity; i++ {
			q.tokens <- struct{}{}
		}
	}
	return q
}

// broadcastLocked must be called with mu held. It wakes every goroutine
// currently parked on the previous notify channel.
func (q *ingressQueue[T]) broadcastLocked() {
	close(q.notify)
	q.notify = make(chan struct{})
}

// Add enqueues item, blocking while the queue is at capacity. It returns
// ErrQueueSealed if the queue is sealed either before or while blocked.
// When the queue was constructed unbounded (capacity -1), Add never
// blocks.
func (q *ingressQueue[T]) Add(item T) error {
	if q.tokens != nil {
		select {
		case <-q.tokens:
		case <-q.sealCh:
			return ErrQueueSealed
		}
	}

	q.mu.Lock()
	if q.sealed {
		q.mu.Unlock()
		if q.tokens != nil {
			q.tokens <- struct{}{}
		}
		return ErrQueueSealed
	}
	q.buf.Add(item)
	q.broadcastLocked()
	q.mu.Unlock()
	return nil
}

// TakeBatch returns once maxCount items have accumulated, maxDelay has
// elapsed since the first item was observed, the queue is sealed, or
// cancel trips. On cancel it returns (nil, ErrTakeCancelled) and leaves the
// queue untouched - nothing is dequeued until a batch is actually decided.
func (q *ingressQueue[T]) TakeBatch(maxCount int, maxDelay time.Duration, cancel <-chan struct{}) ([]T, error) {
	q.mu.Lock()
	for q.buf.Length() == 0 && !q.sealed {
		notify := q.notify
		q.mu.Unlock()
		select {
		case <-notify:
		case <-cancel:
			return nil, ErrTakeCancelled
		}
		q.mu.Lock()
	}

	if q.buf.Length() == 0 {
		// sealed and empty
		q.mu.Unlock()
		return nil, nil
	}

	deadline := time.Now().Add(maxDelay)

loop:
	for q.buf.Length() < maxCount && !q.sealed {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		notify := q.notify
		q.mu.Unlock()

		timer := time.NewTimer(remaining)
		select {
		case <-notify:
			timer.Stop()
			q.mu.Lock()
		case <-timer.C:
			q.mu.Lock()
			break loop
		case <-cancel:
			timer.Stop()
			return nil, ErrTakeCancelled
		}
	}

	n := maxCount
	if q.buf.Length() < n {
		n = q.buf.Length()
	}
	batch := q.drainNLocked(n)
	q.mu.Unlock()
	return batch, nil
}

// Drain returns everything currently queued without waiting, for use after
// Seal to flush residual items.
func (q *ingressQueue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.drainNLocked(q.buf.Length())
}

// drainNLocked must be called with mu held. It pops up to n items and
// returns their capacity tokens.
func (q *ingressQueue[T]) drainNLocked(n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, q.buf.Remove().(T))
	}
	if q.tokens != nil {
		for i := 0; i < n; i++ {
			q.tokens <- struct{}{}
		}
	}
	return out
}

// Seal stops the queue accepting further Add calls and wakes any blocked
// Add or TakeBatch so they can observe it. Idempotent.
func (q *ingressQueue[T]) Seal() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sealed {
		return
	}
	q.sealed = true
	close(q.sealCh)
	q.broadcastLocked()
}

// Count returns the number of items currently queued.
func (q *ingressQueue[T]) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}

// IsSealed reports whether Seal has been called.
func (q *ingressQueue[T]) IsSealed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sealed
}

// IsCompleted reports whether the queue is sealed and drained.
func (q *ingressQueue[T]) IsCompleted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sealed && q.buf.Length() == 0
}
