// Package urlencoded implements percent-decoding of urlencoded payloads,
// such as query strings and form bodies.
package urlencoded

import (
	"bytes"

	"github.com/indigo-web/utils/uf"
	"github.com/sluice-web/sluice/http/status"
	"github.com/sluice-web/sluice/internal/hexconv"
)

// Decode decodes percent-encoded sequences from src, appending the result to dst
// only if there is anything to decode. Otherwise, src is returned back untouched.
func Decode(src, dst []byte) (decoded, buffer []byte, err error) {
	percent := bytes.IndexByte(src, '%')
	if percent == -1 {
		return src, dst, nil
	}

	head := len(dst)

	for percent != -1 {
		if percent >= len(src)-2 {
			return nil, dst, status.ErrBadEncoding
		}

		dst = append(dst, src[:percent]...)
		a, b := hexconv.Halfbyte[src[percent+1]], hexconv.Halfbyte[src[percent+2]]
		if a|b > 0x0f {
			return nil, dst, status.ErrBadEncoding
		}

		dst = append(dst, (a<<4)|b)
		src = src[percent+3:]
		percent = bytes.IndexByte(src, '%')
	}

	dst = append(dst, src...)
	return dst[head:], dst, nil
}

// ExtendedDecode is the same as Decode, but decodes pluses as spaces on top.
func ExtendedDecode(src, dst []byte) (decoded, buffer []byte, err error) {
	head := len(dst)
	modified := false

loop:
	for i, c := range src {
		switch c {
		case '+':
			modified = true
			dst = append(dst, src[:i]...)
			dst = append(dst, ' ')
			src = src[i+1:]
			goto loop
		case '%':
			modified = true

			if len(src)-i < 3 {
				return nil, dst, status.ErrBadEncoding
			}

			a, b := hexconv.Halfbyte[src[i+1]], hexconv.Halfbyte[src[i+2]]
			if a|b > 0x0f {
				return nil, dst, status.ErrBadEncoding
			}

			dst = append(dst, src[:i]...)
			dst = append(dst, (a<<4)|b)
			src = src[i+3:]
			goto loop
		}
	}

	if !modified {
		return src, dst, nil
	}

	dst = append(dst, src...)
	return dst[head:], dst, nil
}

func ExtendedDecodeString(src string, buff []byte) (decoded string, buffer []byte, err error) {
	d, buffer, err := ExtendedDecode(uf.S2B(src), buff)
	return uf.B2S(d), buffer, err
}
