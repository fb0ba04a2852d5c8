package kafkaproducer

import "sync/atomic"

// activeCounter is the process-wide count of messages currently between
// enqueue and connection handoff (§3). It is only ever touched with atomic
// add/subtract, never under a lock, per the Design Notes.
type activeCounter struct {
	n int64
}

func (c *activeCounter) add(delta int) {
	atomic.AddInt64(&c.n, int64(delta))
}

func (c *activeCounter) sub(delta int) {
	atomic.AddInt64(&c.n, -int64(delta))
}

func (c *activeCounter) get() int64 {
	return atomic.LoadInt64(&c.n)
}

// groupKey identifies an outer group: submissions sharing acks and timeout
// share a single wire request's header fields and so can be regrouped
// together.
type groupKey struct {
	acks    Acks
	timeout int32 // milliseconds, truncated the same way buildInnerRequest does
}

// innerKey identifies an inner group within an outer group: everything
// destined for one (route, topic, codec) becomes exactly one Payload. The
// route contributes both the partition id and the connection, since a
// single connection can be the leader for more than one partition.
type innerKey struct {
	partition int32
	conn      Connection
	topic     string
	codec     CompressionCodec
}
