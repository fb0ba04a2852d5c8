package kafkaproducer

// Record is a single message record: an optional partitioning key and its
// payload. It is the smallest unit the ingress pipeline ever moves.
type Record struct {
	Key   []byte
	Value []byte
}

// byteSize approximates the on-wire footprint of the record, used only for
// batching/metrics decisions inside this package - never for actual wire
// framing, which belongs to the Connection implementation.
func (r Record) byteSize() int {
	return len(r.Key) + len(r.Value)
}

// CompressionCodec selects how a Payload's messages should be compressed
// before being handed to a Connection. This package never compresses
// anything itself - see the codec subpackage for reference encoders - it
// only carries the selector through to the wire types.
type CompressionCodec int8

const (
	CompressionNone CompressionCodec = iota
	CompressionGZIP
	CompressionSnappy
	CompressionLZ4
	CompressionZSTD
)

func (c CompressionCodec) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGZIP:
		return "gzip"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// Acks is the broker-side durability requirement for a produce request.
type Acks int16

const (
	AckNone     Acks = 0  // broker does not respond
	AckLeader   Acks = 1  // leader has written the record
	AckAllISR   Acks = -1 // every in-sync replica has written the record
)

// Payload is one topic-partition's worth of a ProduceRequest: every message
// in it shares a destination partition, topic and codec.
type Payload struct {
	Topic     string
	Partition int32
	Codec     CompressionCodec
	Messages  []Record
}

// ProduceRequest is the shape of a single wire request as handed to a
// Connection. Acks and TimeoutMs are request-level headers shared by every
// Payload in the request; encoding this into actual broker wire format is
// the Connection's job, not this package's.
type ProduceRequest struct {
	Acks      Acks
	TimeoutMs int32
	Payloads  []Payload
}

func (r *ProduceRequest) messageCount() int {
	n := 0
	for _, p := range r.Payloads {
		n += len(p.Messages)
	}
	return n
}

// PartitionResponse is the broker's answer for one topic-partition within a
// ProduceRequest.
type PartitionResponse struct {
	Topic     string
	Partition int32
	Offset    int64
	ErrorCode int16
}
