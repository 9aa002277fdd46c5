// Package http models an in-progress HTTP message. The body arrives in
// arbitrarily sliced fragments, the message tracks the moment it is over and
// lets any number of goroutines await that moment and read derived views of
// the received payload.
package http

import (
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
	"github.com/sluice-web/sluice/config"
	"github.com/sluice-web/sluice/http/form"
	"github.com/sluice-web/sluice/http/framing"
	"github.com/sluice-web/sluice/http/mime"
	"github.com/sluice-web/sluice/http/status"
	"github.com/sluice-web/sluice/internal/formdata"
	"github.com/sluice-web/sluice/internal/latch"
	"github.com/sluice-web/sluice/internal/strutil"
	"github.com/sluice-web/sluice/kv"
	"golang.org/x/text/encoding/htmlindex"
)

type Headers = *kv.Storage

// Unmarshaler decodes data into the model. The stock json-iterator decoder
// can be swapped for any function of a matching signature, e.g. goccy's or
// the standard library's json.Unmarshal.
type Unmarshaler func(data []byte, model any) error

// Message is the common ground of requests and responses: the accumulating
// body, the completion signal and lazily computed views over the complete
// payload.
//
// The body is fed strictly sequentially by a single writer. All the reading
// methods may be called by any number of goroutines at the same time; those
// of them touching the body block until it is complete.
type Message struct {
	// Headers hold the received header fields. Never nil.
	Headers Headers

	cfg     *config.Config
	framing framing.Framing
	body    []byte
	done    latch.Latch

	// contentType backs ContentType() up when no header is present.
	contentType mime.MIME

	formOnce sync.Once
	form     form.Form
	formErr  error

	decodedOnce sync.Once
	decoded     []byte
	decodedErr  error
}

func (m *Message) init(cfg *config.Config, headers *kv.Storage, content Content) {
	if cfg == nil {
		cfg = config.Default()
	}
	if headers == nil {
		headers = kv.New()
	}

	m.cfg = cfg
	m.Headers = headers
	m.framing = framing.Classify(headers)
	m.contentType = content.Type

	if len(content.Body) > 0 {
		m.body = append(m.body, content.Body...)
		m.done.Set()
	}
}

// forceNoBody overrides whatever the headers said and completes the message
// bodyless right away.
func (m *Message) forceNoBody() {
	m.framing = framing.Framing{Mode: framing.NoBody}
	m.done.Set()
}

// Framing reports how the body is delimited.
func (m *Message) Framing() framing.Mode {
	return m.framing.Mode
}

// Unframe drops header-derived completion tracking, leaving the message to be
// completed explicitly. Transports deframing the stream themselves (e.g.
// decoding the chunked coding before feeding) call it, so that marker
// detection doesn't misfire on payload bytes.
func (m *Message) Unframe() {
	m.framing = framing.Framing{}
}

// AppendFragment feeds the next piece of the body in, completing the message
// once its framing says the body is over. Exceeding the configured body size
// limit reports status.ErrBodyTooLarge, leaving the body as it was. Feeding
// a fragment into an already complete message is a bug in the feeder and
// panics.
func (m *Message) AppendFragment(fragment []byte) error {
	if m.done.IsSet() {
		panic("http: fragment appended to a complete message")
	}

	if len(m.body)+len(fragment) > m.cfg.Body.MaxSize {
		return status.ErrBodyTooLarge
	}

	m.body = append(m.body, fragment...)
	if m.framing.Advance(len(m.body), fragment) {
		m.done.Set()
	}

	return nil
}

// Complete marks the body as fully received. It is the way to finish messages
// of unknown framing, where only the transport knows the end of the stream.
// Completing a complete message is a no-op.
func (m *Message) Complete() {
	m.done.Set()
}

// Completed reports whether the body has been fully received.
func (m *Message) Completed() bool {
	return m.done.IsSet()
}

// Done returns a channel closed at the moment the body is fully received,
// letting callers compose their own select.
func (m *Message) Done() <-chan struct{} {
	return m.done.Done()
}

// Read blocks until the body is fully received and returns it whole. The
// returned slice is shared among all callers and must not be modified.
func (m *Message) Read() []byte {
	m.done.Wait()
	return m.body
}

// ContentType returns the Content-Type header value, falling back to the
// media type of the content the message was constructed with.
func (m *Message) ContentType() string {
	if value, found := m.Headers.Get("content-type"); found {
		return value
	}

	return m.contentType
}

// Charset extracts the charset parameter of the content type. Messages not
// declaring any are defaulted to mime.UTF8.
func (m *Message) Charset() mime.Charset {
	return mime.CharsetOf(m.ContentType())
}

// Text returns the body decoded per the declared charset. A body that doesn't
// hold up to the declaration results in status.ErrBadEncoding, a charset this
// build cannot decode in status.ErrUnsupportedCharset. Blocks until the body
// is complete.
func (m *Message) Text() (string, error) {
	body := m.Read()

	charset := m.Charset()
	if charset == mime.UTF8 {
		if !utf8.Valid(body) {
			return "", status.ErrBadEncoding
		}

		return uf.B2S(body), nil
	}

	enc, err := htmlindex.Get(string(charset))
	if err != nil {
		return "", status.ErrUnsupportedCharset
	}

	text, err := enc.NewDecoder().String(uf.B2S(body))
	if err != nil {
		return "", status.ErrBadEncoding
	}

	return text, nil
}

// JSON decodes the body into the model using json-iterator.
func (m *Message) JSON(model any) error {
	return m.JSONUsing(model, unmarshalJSON)
}

// JSONUsing decodes the body into the model with the passed unmarshaler.
// When the message explicitly declares the JSON content type, a decode
// failure is reported as status.ErrBadRequestFormat wrapping the original
// error; otherwise the decoder's error is returned untouched.
func (m *Message) JSONUsing(model any, unmarshal Unmarshaler) error {
	text, err := m.Text()
	if err != nil {
		return err
	}

	if err = unmarshal(uf.S2B(text), model); err != nil {
		if m.declaresJSON() {
			return fmt.Errorf("%w: %w", status.ErrBadRequestFormat, err)
		}

		return err
	}

	return nil
}

func unmarshalJSON(data []byte, model any) error {
	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err := iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

func (m *Message) declaresJSON() bool {
	value, _ := strutil.CutHeader(m.ContentType())
	return strcomp.EqualFold(strutil.RStripWS(value), mime.JSON)
}

// Form parses the body as a form of whichever kind the content type
// advertises. Urlencoded and multipart entries come out in the same shape.
// Messages declaring neither, including those with no content type at all,
// yield an empty form. The outcome is computed once and kept, racing callers
// are fine. Blocks until the body is complete.
func (m *Message) Form() (form.Form, error) {
	m.formOnce.Do(func() {
		m.form, m.formErr = m.parseForm()
	})

	return m.form, m.formErr
}

func (m *Message) parseForm() (form.Form, error) {
	contentType := m.ContentType()
	if len(contentType) == 0 {
		return nil, nil
	}

	into := make(form.Form, 0, m.cfg.Body.Form.EntriesPrealloc)
	buff := make([]byte, 0, m.cfg.Body.Form.BufferPrealloc)

	switch {
	case mime.Complies(mime.FormUrlencoded, contentType):
		text, err := m.Text()
		if err != nil {
			return nil, err
		}

		f, _, err := formdata.ParseURLEncoded(into, uf.S2B(text), buff)
		return f, err
	case mime.Complies(mime.Multipart, contentType):
		boundary, ok := multipartBoundary(contentType)
		if !ok {
			return nil, status.ErrBadRequest
		}

		return formdata.ParseMultipart(m.cfg, into, m.Read(), buff, boundary)
	default:
		return nil, nil
	}
}

// Files returns the file-carrying entries of a multipart form, optionally
// filtered down to the given field names. Matching is exact. Messages of any
// other content type have none.
func (m *Message) Files(names ...string) []form.Data {
	contentType := m.ContentType()
	if len(contentType) == 0 || !mime.Complies(mime.Multipart, contentType) {
		return nil
	}

	f, err := m.Form()
	if err != nil {
		return nil
	}

	var files []form.Data
	for _, entry := range f {
		if len(entry.Filename) == 0 {
			continue
		}

		if len(names) > 0 && !slices.Contains(names, entry.Name) {
			continue
		}

		files = append(files, entry)
	}

	return files
}

// Decoded returns the body with the Content-Encoding layers peeled off, in
// reverse order of application. Tokens missing from the configured decoders
// result in status.ErrUnsupportedEncoding. The outcome is computed once and
// kept. Blocks until the body is complete.
func (m *Message) Decoded() ([]byte, error) {
	m.decodedOnce.Do(func() {
		m.decoded, m.decodedErr = m.decode()
	})

	return m.decoded, m.decodedErr
}

func (m *Message) decode() ([]byte, error) {
	body := m.Read()

	var tokens []string
	for _, value := range m.Headers.Values("content-encoding") {
		for token := range strutil.Tokens(value) {
			tokens = append(tokens, token)
		}
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		if strcomp.EqualFold(token, "identity") {
			continue
		}

		decoder := m.cfg.Body.Decoder(token)
		if decoder == nil {
			return nil, status.ErrUnsupportedEncoding
		}

		decoded, err := decoder.Decode(body)
		if err != nil {
			return nil, err
		}

		body = decoded
	}

	return body, nil
}

func multipartBoundary(contentType string) (boundary string, ok bool) {
	for key, value := range strutil.WalkKV(strutil.CutParams(contentType)) {
		if key == "boundary" {
			if len(boundary) != 0 {
				// a duplicate makes the delimiter ambiguous, refuse to guess
				return "", false
			}

			boundary = value
		}
	}

	return boundary, len(boundary) != 0
}
