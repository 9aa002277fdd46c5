// Package framing determines how a message body is delimited and tracks the
// moment it is over.
package framing

import (
	"strconv"

	"github.com/indigo-web/utils/strcomp"
	"github.com/sluice-web/sluice/internal/strutil"
	"github.com/sluice-web/sluice/kv"
)

type Mode uint8

const (
	// Unknown framing carries no delimiter at all. The body lasts until whoever
	// feeds it signals the end explicitly.
	Unknown Mode = iota
	// ContentLength bounds the body by an advertised number of bytes.
	ContentLength
	// Chunked terminates the body with a zero-length chunk marker.
	Chunked
	// NoBody marks messages that carry no body whatsoever.
	NoBody
)

func (m Mode) String() string {
	switch m {
	case ContentLength:
		return "content-length"
	case Chunked:
		return "chunked"
	case NoBody:
		return "no body"
	default:
		return "unknown"
	}
}

// Framing tracks body completion of a single message. The zero value is the
// Unknown framing. Instances must not be shared between messages, as chunked
// framing accumulates parsing state.
type Framing struct {
	Mode Mode
	// Length is the advertised body length. Meaningful in ContentLength mode only.
	Length int

	state terminalState
}

// Classify derives the framing from message headers. Content-Length takes
// precedence, given it holds a valid non-negative integer. Otherwise, chunked
// transfer encoding is looked up. Headers telling nothing result in the
// Unknown framing.
func Classify(headers *kv.Storage) Framing {
	if headers == nil {
		return Framing{}
	}

	if value, found := headers.Get("content-length"); found {
		value = strutil.LStripWS(strutil.RStripWS(value))
		if length, err := strconv.Atoi(value); err == nil && length >= 0 {
			return Framing{Mode: ContentLength, Length: length}
		}
	}

	for _, value := range headers.Values("transfer-encoding") {
		for token := range strutil.Tokens(value) {
			if strcomp.EqualFold(token, "chunked") {
				return Framing{Mode: Chunked}
			}
		}
	}

	return Framing{}
}

// Advance feeds the newly arrived body fragment in, reporting whether the body
// is over. The total is the number of body bytes accumulated so far, including
// the fragment.
//
// In chunked mode the decision is based on spotting the terminal chunk marker,
// which is matched byte-by-byte and thereby survives being torn apart by
// fragment boundaries. The chunk syntax itself isn't validated, so a body whose
// payload contains the marker literally is reported over ahead of time. Exact
// accounting belongs to a transport running a real chunked parser, which then
// signals completion explicitly.
func (f *Framing) Advance(total int, fragment []byte) bool {
	switch f.Mode {
	case ContentLength:
		return total >= f.Length
	case Chunked:
		for _, c := range fragment {
			f.state = f.state.next(c)
			if f.state == stateDone {
				return true
			}
		}

		return false
	case NoBody:
		return true
	default:
		return false
	}
}

// terminalState is the progress of matching the terminal chunk marker: a zero
// length line followed by an empty line. Bare LF line breaks are tolerated.
type terminalState uint8

const (
	stateNone terminalState = iota
	stateZero
	stateZeroCR
	stateZeroLF
	stateZeroLFCR
	stateDone
)

func (s terminalState) next(c byte) terminalState {
	switch s {
	case stateZero:
		switch c {
		case '\r':
			return stateZeroCR
		case '\n':
			return stateZeroLF
		}
	case stateZeroCR:
		if c == '\n' {
			return stateZeroLF
		}
	case stateZeroLF:
		switch c {
		case '\r':
			return stateZeroLFCR
		case '\n':
			return stateDone
		}
	case stateZeroLFCR:
		if c == '\n' {
			return stateDone
		}
	}

	if c == '0' {
		return stateZero
	}

	return stateNone
}
