// Package qparams parses ampersand-separated key-value pairs, the way they
// appear in query strings and urlencoded form bodies.
package qparams

import (
	"github.com/indigo-web/utils/uf"
	"github.com/sluice-web/sluice/http/status"
	"github.com/sluice-web/sluice/kv"
)

type (
	CB      = func(k, v string)
	Decoder = func(src, dst []byte) (decoded, buffer []byte, err error)
)

// Into passes every parsed pair into the storage.
func Into(s *kv.Storage) CB {
	return func(k, v string) {
		s.Add(k, v)
	}
}

// Parse splits data into key-value pairs, decoding each of them via the decoder
// and passing the result into cb. Keys without a value, also known as flags,
// obtain defFlagValue. The buffer is used for decoding and is returned back
// possibly grown.
func Parse(data, buff []byte, cb CB, decoder Decoder, defFlagValue string) (buffer []byte, err error) {
	var key string

parseKey:
	if len(data) == 0 {
		return buff, nil
	}

	var decoded []byte

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch c {
		case '=':
			decoded, buff, err = decoder(data[:i], buff)
			if err != nil {
				return buff, err
			}
			if len(decoded) == 0 {
				return buff, status.ErrBadEncoding
			}

			key = uf.B2S(decoded)
			data = data[i+1:]
			goto parseValue
		case '&':
			decoded, buff, err = decoder(data[:i], buff)
			if err != nil {
				return buff, err
			}
			if len(decoded) == 0 {
				return buff, status.ErrBadEncoding
			}

			cb(uf.B2S(decoded), defFlagValue)
			data = data[i+1:]
			goto parseKey
		}

		if illegalSymbol(c) {
			// exclude all non-printable characters and whitespaces
			return buff, status.ErrBadEncoding
		}
	}

	decoded, buff, err = decoder(data, buff)
	if err != nil {
		return buff, err
	}
	if len(decoded) == 0 {
		return buff, status.ErrBadEncoding
	}

	cb(uf.B2S(decoded), defFlagValue)

	return buff, nil

parseValue:
	for i, c := range data {
		if c == '&' {
			decoded, buff, err = decoder(data[:i], buff)
			if err != nil {
				return buff, err
			}

			cb(key, value(decoded))
			data = data[i+1:]
			goto parseKey
		} else if illegalSymbol(c) {
			return buff, status.ErrBadEncoding
		}
	}

	decoded, buff, err = decoder(data, buff)
	if err != nil {
		return buff, err
	}

	cb(key, value(decoded))

	return buff, nil
}

func illegalSymbol(c byte) bool {
	return c < 0x21 || c > 0x7e
}

func value(b []byte) string {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}

	return uf.B2S(b)
}
