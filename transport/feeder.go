// Package transport adapts a connection-ordered byte stream to the message
// body model: it slices stream fragments at body boundaries and owns the
// explicit completion signal where framing alone cannot tell the end.
package transport

import (
	"io"

	"github.com/indigo-web/chunkedbody"
	"github.com/sluice-web/sluice/http"
	"github.com/sluice-web/sluice/http/framing"
)

// Feeder pushes stream fragments into a single message. Bytes past the end of
// the body are handed back, as they belong to the next message on the
// connection.
type Feeder struct {
	msg       *http.Message
	parser    *chunkedbody.Parser
	mode      framing.Mode
	remaining int
	trailer   bool
}

// NewFeeder returns a feeder that deframes the stream by itself: bodies under
// the chunked coding are decoded on the way, so the message accumulates bare
// payload bytes. Attach it before feeding any body bytes in.
func NewFeeder(msg *http.Message) *Feeder {
	f := newFeeder(msg)
	if f.mode == framing.Chunked {
		f.parser = chunkedbody.NewParser(chunkedbody.DefaultSettings())
		f.trailer = msg.Headers.Has("trailer")
		msg.Unframe()
	}

	return f
}

// NewRawFeeder returns a feeder handing fragments over verbatim, leaving
// completion tracking entirely to the message framing.
func NewRawFeeder(msg *http.Message) *Feeder {
	return newFeeder(msg)
}

func newFeeder(msg *http.Message) *Feeder {
	fr := framing.Classify(msg.Headers)

	return &Feeder{
		msg:       msg,
		mode:      fr.Mode,
		remaining: fr.Length,
	}
}

// Feed pushes the next stream fragment in. Surplus bytes beyond the end of
// the body are returned back; feeding an already complete message turns the
// whole fragment into surplus.
func (f *Feeder) Feed(fragment []byte) (extra []byte, err error) {
	if f.msg.Completed() {
		return fragment, nil
	}

	switch {
	case f.mode == framing.ContentLength:
		return f.feedBounded(fragment)
	case f.mode == framing.Chunked && f.parser != nil:
		return f.feedChunked(fragment)
	default:
		return nil, f.msg.AppendFragment(fragment)
	}
}

// Finish signals the end of the stream, completing messages whose framing
// cannot tell the end on its own. Finishing a complete message is a no-op.
func (f *Feeder) Finish() {
	f.msg.Complete()
}

func (f *Feeder) feedBounded(fragment []byte) (extra []byte, err error) {
	if len(fragment) > f.remaining {
		fragment, extra = fragment[:f.remaining], fragment[f.remaining:]
	}

	if err = f.msg.AppendFragment(fragment); err != nil {
		return nil, err
	}

	f.remaining -= len(fragment)

	return extra, nil
}

func (f *Feeder) feedChunked(fragment []byte) (extra []byte, err error) {
	for len(fragment) > 0 {
		chunk, rest, err := f.parser.Parse(fragment, f.trailer)
		switch err {
		case nil:
		case io.EOF:
			// the terminal chunk has been reached
			if err = f.append(chunk); err != nil {
				return nil, err
			}

			f.msg.Complete()

			return rest, nil
		default:
			return nil, err
		}

		if err = f.append(chunk); err != nil {
			return nil, err
		}

		fragment = rest
	}

	return nil, nil
}

func (f *Feeder) append(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}

	return f.msg.AppendFragment(chunk)
}
