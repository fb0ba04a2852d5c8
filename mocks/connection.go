package mocks

import (
	"context"
	"fmt"
	"sync"

	kafkaproducer "github.com/nrandell/kafkaproducer"
)

// Connection is a fake kafkaproducer.Connection. Set up expectations with
// ExpectSendSucceeds/ExpectSendFails/ExpectSendMatching before the code
// under test can issue SendAsync calls; each call consumes the oldest
// unconsumed expectation, the same first-in-first-out contract sarama's own
// mock producer uses.
type Connection struct {
	mu           sync.Mutex
	t            ErrorReporter
	expectations []func(kafkaproducer.ProduceRequest) kafkaproducer.ConnectionResult
	nextOffset   int64
}

// NewConnection constructs an empty Connection mock.
func NewConnection(t ErrorReporter) *Connection {
	return &Connection{t: t}
}

// ExpectSendSucceeds queues an expectation that echoes back a successful
// PartitionResponse, with an incrementing offset, for every payload in the
// next request.
func (c *Connection) ExpectSendSucceeds() *Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectations = append(c.expectations, func(req kafkaproducer.ProduceRequest) kafkaproducer.ConnectionResult {
		responses := make([]kafkaproducer.PartitionResponse, 0, len(req.Payloads))
		for _, p := range req.Payloads {
			c.nextOffset++
			responses = append(responses, kafkaproducer.PartitionResponse{
				Topic:     p.Topic,
				Partition: p.Partition,
				Offset:    c.nextOffset,
			})
		}
		return kafkaproducer.ConnectionResult{Responses: responses}
	})
	return c
}

// ExpectSendFails queues an expectation that fails the next request with
// err, regardless of its contents.
func (c *Connection) ExpectSendFails(err error) *Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectations = append(c.expectations, func(kafkaproducer.ProduceRequest) kafkaproducer.ConnectionResult {
		return kafkaproducer.ConnectionResult{Err: err}
	})
	return c
}

// ExpectSendMatching queues an expectation that first runs check against
// the next request - reporting a test failure if it returns an error - and
// then resolves with result regardless of the check's outcome.
func (c *Connection) ExpectSendMatching(check func(kafkaproducer.ProduceRequest) error, result kafkaproducer.ConnectionResult) *Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectations = append(c.expectations, func(req kafkaproducer.ProduceRequest) kafkaproducer.ConnectionResult {
		if check != nil {
			if err := check(req); err != nil {
				c.t.Errorf("mocks: request check failed: %v", err)
			}
		}
		return result
	})
	return c
}

// SendAsync implements kafkaproducer.Connection.
func (c *Connection) SendAsync(ctx context.Context, req kafkaproducer.ProduceRequest) <-chan kafkaproducer.ConnectionResult {
	ch := make(chan kafkaproducer.ConnectionResult, 1)

	c.mu.Lock()
	if len(c.expectations) == 0 {
		c.mu.Unlock()
		c.t.Errorf("mocks: unexpected SendAsync call, no expectations left")
		ch <- kafkaproducer.ConnectionResult{Err: fmt.Errorf("mocks: no expectation set for this request")}
		close(ch)
		return ch
	}
	next := c.expectations[0]
	c.expectations = c.expectations[1:]
	c.mu.Unlock()

	go func() {
		ch <- next(req)
		close(ch)
	}()
	return ch
}

// ExpectationsWereMet reports a test failure if any queued expectation was
// never consumed by a SendAsync call.
func (c *Connection) ExpectationsWereMet() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.expectations) > 0 {
		c.t.Errorf("mocks: %d expectation(s) never consumed", len(c.expectations))
	}
}
