package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipCodec uses klauspost/compress's gzip, a drop-in for the standard
// library implementation with a faster compressor - the same package
// sarama pulls in for its zstd support.
type gzipCodec struct{}

func (gzipCodec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decode(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
