package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

func NewGZIP() Codec {
	return gzipCodec{}
}

type gzipCodec struct{}

func (gzipCodec) Token() string {
	return "gzip"
}

func (gzipCodec) Decode(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return decoded, r.Close()
}
