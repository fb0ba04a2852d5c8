package kafkaproducer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrProducerDisposed is returned by Send once the producer has begun or
// finished shutting down.
var ErrProducerDisposed = errors.New("kafkaproducer: producer is disposed")

// ErrIngressSealed is returned by Send when the ingress queue seals in the
// narrow window between the disposed check and the enqueue attempt.
var ErrIngressSealed = errors.New("kafkaproducer: ingress queue is sealed")

// ErrQueueSealed is returned by ingressQueue.Add once Seal has been called.
var ErrQueueSealed = errors.New("kafkaproducer: queue sealed")

// ErrTakeCancelled is returned by ingressQueue.TakeBatch when its cancel
// channel trips before a batch could be assembled.
var ErrTakeCancelled = errors.New("kafkaproducer: take cancelled")

// SendFailedError reports that a submission could not be completed, either
// because it never got a Route or because the Connection it was handed to
// returned an error. Route is the zero value when the failure happened
// before routing, and also for a connection failure, which fails a whole
// outer group: the route of the failing send is not recorded in the error.
type SendFailedError struct {
	Route Route
	Cause error
}

func (e *SendFailedError) Error() string {
	return fmt.Sprintf("kafkaproducer: send failed: %v", e.Cause)
}

func (e *SendFailedError) Unwrap() error {
	return e.Cause
}

func newSendFailedError(route Route, cause error) *SendFailedError {
	return &SendFailedError{Route: route, Cause: errors.Wrap(cause, "connection send")}
}

// ConfigurationError reports an out-of-range Config field caught by
// Config.Validate.
type ConfigurationError string

func (e ConfigurationError) Error() string {
	return "kafkaproducer: invalid configuration: " + string(e)
}
