package formdata

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// stream is a cursor over a string, where consumed data is cut off the head.
type stream struct {
	data string
}

func newStream(data string) stream {
	return stream{data}
}

// findSubstr returns the offset of the substring relatively to the head, -1 if
// there is none. The head stays in place.
func (s *stream) findSubstr(substr string) int {
	return strings.Index(s.data, substr)
}

func (s *stream) compareFold(str string) bool {
	return len(s.data) >= len(str) && strcomp.EqualFold(s.data[:len(str)], str)
}

// consume advances past str, given the head starts with it.
func (s *stream) consume(str string) bool {
	if strings.HasPrefix(s.data, str) {
		s.advance(len(str))
		return true
	}

	return false
}

// consumeFold is consume, but case-insensitive.
func (s *stream) consumeFold(str string) bool {
	if s.compareFold(str) {
		s.advance(len(str))
		return true
	}

	return false
}

// advance cuts n bytes off the head, returning them.
func (s *stream) advance(n int) (leftBehind string) {
	leftBehind, s.data = s.data[:n], s.data[n:]
	return leftBehind
}

// advanceLine cuts a whole line off the head, returning it without the line
// break. Both CRLF and bare LF are recognized. Data without a line break left
// reports ok=false and stays in place.
func (s *stream) advanceLine() (line string, ok bool) {
	newline := strings.IndexByte(s.data, '\n')
	if newline == -1 {
		return "", false
	}

	line = s.advance(newline + 1)
	line = line[:len(line)-1]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, true
}

func (s *stream) skipWhitespaces() {
	for i := 0; i < len(s.data); i++ {
		switch s.data[i] {
		case ' ', '\t':
		default:
			s.advance(i)
			return
		}
	}

	s.advance(len(s.data))
}
