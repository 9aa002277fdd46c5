package codec

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

func NewBrotli() Codec {
	return brotliCodec{}
}

type brotliCodec struct{}

func (brotliCodec) Token() string {
	return "br"
}

func (brotliCodec) Decode(src []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
}
