package codec

import "github.com/klauspost/compress/zstd"

// zstdCodec follows sarama's own zstd.go: a shared decoder and
// default-level encoder built once, since both are safe for concurrent
// use.
type zstdCodec struct{}

var (
	zstdDec, _ = zstd.NewReader(nil)
	zstdEnc, _ = zstd.NewWriter(nil, zstd.WithZeroFrames(true))
)

func (zstdCodec) Encode(data []byte) ([]byte, error) {
	return zstdEnc.EncodeAll(data, nil), nil
}

func (zstdCodec) Decode(data []byte) ([]byte, error) {
	return zstdDec.DecodeAll(data, nil)
}
