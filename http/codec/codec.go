// Package codec implements decoding of content codings, the way they are
// advertised in the Content-Encoding header.
package codec

// Codec decodes payloads of a single content coding.
type Codec interface {
	// Token returns the coding token associated with the codec itself.
	Token() string
	// Decode decompresses the whole payload at once. The source is left
	// untouched, the returned slice is freshly allocated.
	Decode(src []byte) ([]byte, error)
}

// Defaults returns codecs of all the supported content codings.
func Defaults() []Codec {
	return []Codec{NewGZIP(), NewDeflate(), NewZSTD(), NewBrotli()}
}
