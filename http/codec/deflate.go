package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

func NewDeflate() Codec {
	return deflateCodec{}
}

type deflateCodec struct{}

func (deflateCodec) Token() string {
	return "deflate"
}

func (deflateCodec) Decode(src []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(src))
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return decoded, r.Close()
}
