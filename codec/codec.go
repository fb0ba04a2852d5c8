// Package codec provides reference compressors for the wire encoding a
// Connection implementation ultimately produces. kafkaproducer itself never
// compresses anything - a Payload's CompressionCodec is only a selector
// carried through to whatever Connection ends up handling it - these are
// building blocks a Connection implementation can call into.
package codec

import (
	kafkaproducer "github.com/nrandell/kafkaproducer"
)

// Codec compresses and decompresses the raw bytes of a record batch. What
// "raw bytes" means (a length-prefixed record set, a JSON array, anything
// else) is up to the caller; these implementations only see and return
// opaque byte slices.
type Codec interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ForCodec returns the reference Codec for c, or (nil, false) for
// CompressionNone or an unrecognized value - CompressionNone means "don't
// compress" and has no Codec of its own.
func ForCodec(c kafkaproducer.CompressionCodec) (Codec, bool) {
	switch c {
	case kafkaproducer.CompressionGZIP:
		return gzipCodec{}, true
	case kafkaproducer.CompressionSnappy:
		return snappyCodec{}, true
	case kafkaproducer.CompressionLZ4:
		return lz4Codec{}, true
	case kafkaproducer.CompressionZSTD:
		return zstdCodec{}, true
	default:
		return nil, false
	}
}
