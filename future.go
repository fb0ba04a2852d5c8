package kafkaproducer

import "sync"

// Result is what a Future resolves to: either the broker's per-partition
// responses for the submission's messages, or a terminal error.
type Result struct {
	Responses []PartitionResponse
	Err       error
}

// Future is the single-shot completion handle returned by Send. It is
// resolved exactly once, from the dispatch path (the demux stage, or
// produceAndSend for empty or unroutable submissions), with either a successful
// result or an error; a second resolution attempt is silently ignored, the
// same "first write wins" contract sarama's sync producer gets for free by
// only ever sending one value down a size-1 channel (sync_producer.go).
type Future struct {
	once sync.Once
	done chan struct{}
	mu   sync.RWMutex
	res  Result
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve completes the future. Only the first call has any effect.
func (f *Future) resolve(res Result) {
	f.once.Do(func() {
		f.mu.Lock()
		f.res = res
		f.mu.Unlock()
		close(f.done)
	})
}

// Done returns a channel that is closed once the future is resolved, for
// use in select statements alongside a context or timeout.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future is resolved and returns its result.
func (f *Future) Wait() Result {
	<-f.done
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.res
}

// TryResult returns the resolved result and true if the future has already
// resolved, or the zero Result and false otherwise. It never blocks.
func (f *Future) TryResult() (Result, bool) {
	select {
	case <-f.done:
		f.mu.RLock()
		defer f.mu.RUnlock()
		return f.res, true
	default:
		return Result{}, false
	}
}
