package strutil

import (
	"iter"
	"strings"
)

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// CutHeader splits a header value into the value itself and its parameters,
// stripping whitespaces between the value and the first-encountered parameter.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return header, ""
	}

	return header[:sep], LStripWS(header[sep+1:])
}

// CutParams returns the parameters of a header value, if any.
func CutParams(header string) (params string) {
	_, params = CutHeader(header)
	return params
}

func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}

// Tokens iterates over the items of a comma-separated header value, each
// stripped of surrounding whitespace. Empty items are skipped.
func Tokens(list string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(list) > 0 {
			var item string
			if comma := strings.IndexByte(list, ','); comma != -1 {
				item, list = list[:comma], list[comma+1:]
			} else {
				item, list = list, ""
			}

			item = LStripWS(RStripWS(item))
			if len(item) == 0 {
				continue
			}

			if !yield(item) {
				return
			}
		}
	}
}

// a-z A-Z 0-9 ()[]{}-_<>.,/|%"
// % is included, as WalkKV does not decode key or value, therefore urlencoded values must
// not appear as unsafe characters
var safeChars = [256]bool{
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, true, false, false, true, false, false, true, true, false, true, true, true, true, true,
	true, true, true, true, true, true, true, true, true, true, false, false, true, false, true, false,
	false, true, true, true, true, true, true, true, true, true, true, true, true, true, true, true,
	true, true, true, true, true, true, true, true, true, true, true, true, false, true, false, true,
	false, true, true, true, true, true, true, true, true, true, true, true, true, true, true, true,
	true, true, true, true, true, true, true, true, true, true, true, true, true, true, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
	false, false, false, false, false, false, false, false, false, false, false, false, false, false, false, false,
}

// WalkKV iterates over semicolon-separated key=value parameters. A pair of empty
// strings is yielded at any malformed input, which distinguishes an error from a
// valueless key, as those are yielded with the value of an empty string.
func WalkKV(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		var key string

	paramKey:
		for i := 0; i < len(data); i++ {
			c := data[i]

			if c == '=' {
				key = data[:i]
				data = data[i+1:]
				goto paramValue
			}

			if !safeChars[c] {
				yield("", "")
				return
			}
		}

		yield(data, "")
		return

	paramValue:
		for i := 0; i < len(data); i++ {
			c := data[i]

			if c == ';' {
				value := data[:i]
				data = LStripWS(data[i+1:])

				if !yield(key, Unquote(value)) {
					return
				}

				goto paramKey
			}

			if !safeChars[c] {
				yield("", "")
				return
			}
		}

		yield(key, Unquote(data))
		return
	}
}
