package formdata

import (
	"iter"

	"github.com/indigo-web/utils/uf"
	"github.com/sluice-web/sluice/config"
	"github.com/sluice-web/sluice/http/form"
	"github.com/sluice-web/sluice/http/status"
	"github.com/sluice-web/sluice/internal/strutil"
	"github.com/sluice-web/sluice/internal/urlencoded"
)

type partHeader struct {
	Name, File, ContentType, Charset string
}

// ParseMultipart appends entries of a multipart/form-data body to the form.
// The boundary comes bare, as extracted from the Content-Type header, without
// the leading dashes. The buffer is used for urldecoding entry names and
// filenames. Any syntax violation results in status.ErrBadRequest.
func ParseMultipart(cfg *config.Config, into form.Form, data, buff []byte, b string) (form.Form, error) {
	boundary := "--" + b
	charset := cfg.Body.Form.DefaultCoding
	s := newStream(uf.B2S(data))

	if !skipPreamble(&s, boundary) {
		return nil, status.ErrBadRequest
	}

	if s.consume("--\r\n") || s.consume("--\n") || s.consume("--") {
		// the very first boundary is the closing one, so the form is empty
		return into, nil
	}

	if !s.consume("\r\n") && !s.consume("\n") {
		return nil, status.ErrBadRequest
	}

	for hdr, value := range parts(&s, boundary) {
		if len(hdr.Name) == 0 {
			return nil, status.ErrBadRequest
		}

		var err error
		hdr.Name, buff, err = urlencoded.ExtendedDecodeString(hdr.Name, buff)
		if err != nil {
			return nil, err
		}

		hdr.File, buff, err = urlencoded.ExtendedDecodeString(hdr.File, buff)
		if err != nil {
			return nil, err
		}

		if hdr.Name == "_charset_" {
			charset = value
			if len(charset) == 0 {
				return nil, status.ErrBadRequest
			}

			continue
		}

		if len(hdr.Charset) == 0 {
			hdr.Charset = charset
		}

		if len(hdr.ContentType) == 0 {
			hdr.ContentType = cfg.Body.Form.DefaultContentType
		}

		into = append(into, form.Data{
			Name:     hdr.Name,
			Filename: hdr.File,
			Type:     hdr.ContentType,
			Charset:  hdr.Charset,
			Value:    value,
		})
	}

	return into, nil
}

func skipPreamble(s *stream, boundary string) bool {
	b := s.findSubstr(boundary)
	if b == -1 {
		return false
	}

	s.advance(b + len(boundary))
	return true
}

// parts yields the headers and the value of each part in order. A part with an
// empty name signals malformed syntax and terminates the iteration.
func parts(s *stream, boundary string) iter.Seq2[partHeader, string] {
	return func(yield func(partHeader, string) bool) {
		for {
			hdr := partHeaders(s)
			if len(hdr.Name) == 0 {
				yield(hdr, "")
				return
			}

			next := s.findSubstr(boundary)
			if next == -1 {
				yield(partHeader{}, "")
				return
			}

			if !yield(hdr, rstripCRLF(s.advance(next))) {
				return
			}

			s.advance(len(boundary))

			if s.consume("--\r\n") || s.consume("--\n") || s.consume("--") {
				return
			}
		}
	}
}

func partHeaders(s *stream) (hdr partHeader) {
	for {
		var ok bool
		hdr, ok = parseHeader(s, hdr)
		if !ok {
			return partHeader{}
		}

		if s.consume("\r\n") || s.consume("\n") {
			return hdr
		}
	}
}

func parseHeader(s *stream, origin partHeader) (modified partHeader, ok bool) {
	switch {
	case s.consumeFold("Content-Disposition:"):
		s.skipWhitespaces()
		s.consume("form-data;")
		s.skipWhitespaces()
		params, ok := s.advanceLine()
		if !ok {
			return origin, false
		}

		return contentDispositionParams(params, origin)
	case s.consumeFold("Content-Type:"):
		s.skipWhitespaces()
		line, ok := s.advanceLine()
		if !ok {
			return origin, false
		}

		var params string
		origin.ContentType, params = strutil.CutHeader(line)
		if len(params) > 0 {
			origin, ok = contentTypeParams(params, origin)
		}

		return origin, ok
	default:
		// TODO: handle Content-Transfer-Encoding
		_, ok = s.advanceLine()
		return origin, ok
	}
}

func contentDispositionParams(params string, origin partHeader) (modified partHeader, ok bool) {
	for key, value := range strutil.WalkKV(params) {
		if len(key) == 0 || len(value) == 0 {
			return origin, false
		}

		switch key {
		case "name":
			origin.Name = value
		case "filename":
			origin.File = value
		}
	}

	return origin, true
}

func contentTypeParams(params string, origin partHeader) (modified partHeader, ok bool) {
	for key, value := range strutil.WalkKV(params) {
		if len(key) == 0 || len(value) == 0 {
			return origin, false
		}

		if key == "charset" {
			origin.Charset = value
			return origin, true
		}
	}

	return origin, true
}

func rstripCRLF(str string) string {
	if len(str) > 0 && str[len(str)-1] == '\n' {
		str = str[:len(str)-1]

		if len(str) > 0 && str[len(str)-1] == '\r' {
			str = str[:len(str)-1]
		}
	}

	return str
}
