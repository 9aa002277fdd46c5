// Package config gathers all the tunable knobs of message processing in a
// single place. Constructors accept a *Config as their first parameter; pass
// Default() unless something needs overriding.
package config

import (
	"github.com/indigo-web/utils/strcomp"
	"github.com/sluice-web/sluice/http/codec"
	"github.com/sluice-web/sluice/http/mime"
)

type (
	Headers struct {
		// CookiesPrealloc hints the expected number of cookies.
		CookiesPrealloc int
	}

	BodyForm struct {
		// EntriesPrealloc hints the expected number of form entries.
		EntriesPrealloc int
		// BufferPrealloc is the initial size of the buffer used for urldecoding
		// form keys and values.
		BufferPrealloc int
		// DefaultCoding sets the default form entries charset unless one is
		// explicitly set.
		DefaultCoding mime.Charset
		// DefaultContentType sets the default form body MIME (as for multipart)
		// unless one is explicitly set.
		DefaultContentType mime.MIME
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. 0 will
		// reject any message with a body (appending even a single byte results in
		// status.ErrBodyTooLarge). In order to disable the setting, use math.MaxInt.
		MaxSize int
		// Form is either application/x-www-form-urlencoded or multipart/form-data. Due
		// to their common nature, they are easy to be generalized.
		Form BodyForm
		// Decoders are content coding decoders, applied when the decoded body is
		// requested. Content-Encoding tokens missing here result in
		// status.ErrUnsupportedEncoding.
		Decoders []codec.Codec
	}

	Query struct {
		// DefaultFlagValue is the value parameters without one obtain.
		DefaultFlagValue string `test:"nullable"`
		// ParamsPrealloc hints the expected number of query parameters.
		ParamsPrealloc int
	}
)

type Config struct {
	Headers Headers
	Body    Body
	Query   Query
}

func Default() *Config {
	return &Config{
		Headers: Headers{
			CookiesPrealloc: 5,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
			Form: BodyForm{
				EntriesPrealloc: 8,
				// 1kb is intended for primarily x-www-form-urlencoded, as multipart
				// needs of memory are assumingly fairly low
				BufferPrealloc:     1024,
				DefaultCoding:      mime.UTF8,
				DefaultContentType: mime.Plain,
			},
			Decoders: codec.Defaults(),
		},
		Query: Query{
			ParamsPrealloc: 8,
		},
	}
}

// Decoder returns the decoder of the token, nil if there is none. Tokens are
// matched case-insensitively.
func (b Body) Decoder(token string) codec.Codec {
	for _, c := range b.Decoders {
		if strcomp.EqualFold(c.Token(), token) {
			return c
		}
	}

	return nil
}
