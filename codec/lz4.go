package codec

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Codec uses pierrec/lz4/v4, the same family of package sarama's
// decompress.go pools readers from (sarama itself is pinned to the older
// v4-incompatible import path; v4 is the maintained successor).
type lz4Codec struct{}

func (lz4Codec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Codec) Decode(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	return io.ReadAll(r)
}
