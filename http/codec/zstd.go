package codec

import (
	"github.com/klauspost/compress/zstd"
)

func NewZSTD() Codec {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}

	return zstdCodec{decoder}
}

// zstdCodec wraps a streamless zstd decoder, which is safe for concurrent use.
type zstdCodec struct {
	decoder *zstd.Decoder
}

func (zstdCodec) Token() string {
	return "zstd"
}

func (z zstdCodec) Decode(src []byte) ([]byte, error) {
	return z.decoder.DecodeAll(src, nil)
}
