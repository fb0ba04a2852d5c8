package codec

import snappy "github.com/eapache/go-xerial-snappy"

// snappyCodec uses eapache/go-xerial-snappy, the same xerial-framed snappy
// implementation sarama's decompress.go relies on for wire compatibility
// with the JVM client.
type snappyCodec struct{}

func (snappyCodec) Encode(data []byte) ([]byte, error) {
	return snappy.Encode(data), nil
}

func (snappyCodec) Decode(data []byte) ([]byte, error) {
	return snappy.Decode(data)
}
