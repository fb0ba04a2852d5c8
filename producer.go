package kafkaproducer

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/pkg/errors"
)

// Producer is the async ingress-to-broker pipeline described by the
// package: callers submit messages via Send, a single dispatch goroutine
// coalesces them into broker requests and fans them out over Router-
// resolved connections, and each Send's Future is resolved once the
// broker (or a failure) is heard back from.
//
// You must eventually call Close or Dispose, mirroring sarama's
// AsyncProducer contract, or the dispatch goroutine leaks.
type Producer struct {
	router   Router
	metadata MetadataQueries
	cfg      *Config
	metrics  *producerMetrics

	ingress *ingressQueue[*Submission]
	active  activeCounter

	disposed atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	loopDone chan struct{}

	disposeOnce sync.Once
	disposeErr  error
}

// NewProducer constructs a Producer and immediately spawns its dispatch
// loop. router and metadata are external collaborators - see Router,
// Connection and MetadataQueries - this package never dials a broker
// itself. A nil cfg uses NewConfig()'s defaults.
func NewProducer(router Router, metadata MetadataQueries, cfg *Config) (*Producer, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Producer{
		router:   router,
		metadata: metadata,
		cfg:      cfg,
		metrics:  newProducerMetrics(),
		ingress:  newIngressQueue[*Submission](cfg.MaxBufferedMessages),
		stopCh:   make(chan struct{}),
		loopDone: make(chan struct{}),
	}

	go withRecover(p.dispatchLoop)

	return p, nil
}

// Metrics exposes the go-metrics registry this producer reports into.
func (p *Producer) Metrics() metrics.Registry {
	return p.metrics.registry
}

// Send materializes messages into a Submission and enqueues it on the
// ingress queue, returning a Future the caller can wait on for the
// broker's per-partition responses. It fails synchronously only if the
// producer is already disposed or the ingress queue seals in the narrow
// race window between that check and the enqueue; every later failure
// (routing, connection, broker error) is delivered through the Future.
func (p *Producer) Send(topic string, messages []Record, opts ...SendOption) (*Future, error) {
	if p.disposed.Load() {
		return nil, ErrProducerDisposed
	}

	o := SendOptions{Acks: DefaultAcks, Timeout: DefaultTimeout, Codec: DefaultCodec}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}

	snapshot := make([]Record, len(messages))
	copy(snapshot, messages)

	sub := newSubmission(topic, snapshot, o.Acks, o.Timeout, o.Codec)

	if err := p.ingress.Add(sub); err != nil {
		return nil, ErrIngressSealed
	}
	p.active.add(len(snapshot))
	p.metrics.activeGauge.Update(p.active.get())

	return sub.completion, nil
}

// Stop seals the ingress queue and signals the dispatch loop to treat any
// in-flight TakeBatch as cancelled. If waitForInFlight is true it blocks
// until the loop has drained and exited, bounded by maxWait (cfg's
// MaxDisposeWait if maxWait <= 0). Safe to call more than once; only the
// first call has effect on the seal/signal, but every call honors
// waitForInFlight.
func (p *Producer) Stop(waitForInFlight bool, maxWait time.Duration) error {
	p.stopOnce.Do(func() {
		p.disposed.Store(true)
		p.ingress.Seal()
		close(p.stopCh)
	})

	if !waitForInFlight {
		return nil
	}
	if maxWait <= 0 {
		maxWait = p.cfg.MaxDisposeWait
	}

	select {
	case <-p.loopDone:
		return nil
	case <-time.After(maxWait):
		return fmt.Errorf("kafkaproducer: dispatch loop did not stop within %s", maxWait)
	}
}

// Dispose idempotently calls Stop(false, 0) and then releases the queue,
// router and metadata facade, in that guaranteed order regardless of
// intermediate failures. Safe to call after Stop, and safe to call more
// than once - later calls just return the first call's result.
func (p *Producer) Dispose() error {
	p.disposeOnce.Do(func() {
		p.Stop(false, 0)
		p.disposeErr = p.releaseCollaborators()
	})
	return p.disposeErr
}

// Close performs a graceful shutdown: it waits (bounded by cfg's
// MaxDisposeWait) for every submission accepted before the call to
// resolve, then releases collaborators via Dispose. It satisfies
// io.Closer.
func (p *Producer) Close() error {
	stopErr := p.Stop(true, p.cfg.MaxDisposeWait)
	disposeErr := p.Dispose()

	var result *multierror.Error
	if stopErr != nil {
		result = multierror.Append(result, stopErr)
	}
	if disposeErr != nil {
		result = multierror.Append(result, disposeErr)
	}
	return result.ErrorOrNil()
}

type closer interface {
	Close() error
}

// releaseCollaborators releases resources in a fixed order - ingress
// queue, router, metadata facade - continuing past any individual failure
// so a broken collaborator can never block release of the others.
func (p *Producer) releaseCollaborators() error {
	var result *multierror.Error

	p.ingress.Seal()

	if c, ok := p.router.(closer); ok {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "release router"))
		}
	}
	if c, ok := p.metadata.(closer); ok {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "release metadata"))
		}
	}

	return result.ErrorOrNil()
}
