package kafkaproducer

import "time"

// Submission is one caller-level Send call: the messages it carries, the
// request-level parameters they must be sent under, and the single-shot
// future the caller is waiting on. Ownership passes from the caller to the
// ingress queue, to the dispatch loop, to whichever Connection ends up
// carrying its messages, and finally to the demux stage that resolves
// completion.
type Submission struct {
	Topic    string
	Messages []Record
	Acks     Acks
	Timeout  time.Duration
	Codec    CompressionCodec

	completion *Future
}

func newSubmission(topic string, messages []Record, acks Acks, timeout time.Duration, codec CompressionCodec) *Submission {
	return &Submission{
		Topic:      topic,
		Messages:   messages,
		Acks:       acks,
		Timeout:    timeout,
		Codec:      codec,
		completion: newFuture(),
	}
}

// routedMessage is one message flattened out of a batch of submissions,
// tagged with everything the fan-out stage needs to regroup it: which
// submission it came from (for the demux join), and where it is headed.
type routedMessage struct {
	submission *Submission
	record     Record
	route      Route
}
