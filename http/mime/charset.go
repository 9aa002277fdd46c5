package mime

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/sluice-web/sluice/internal/strutil"
)

type Charset = string

const (
	UTF8   Charset = "utf8"
	UTF16  Charset = "utf16"
	ASCII  Charset = "ascii"
	Latin1 Charset = "iso-8859-1"
	// feel free to add more widespread charsets!
)

// CharsetOf extracts the value of the charset parameter of a Content-Type
// header value. The value is lowercased and spans till the first semicolon
// or whitespace. Missing or empty charsets default to utf8.
func CharsetOf(contentType string) Charset {
	params := strutil.CutParams(contentType)

	for len(params) > 0 {
		var param string
		if sep := strings.IndexByte(params, ';'); sep != -1 {
			param, params = params[:sep], strutil.LStripWS(params[sep+1:])
		} else {
			param, params = params, ""
		}

		key, value, found := strings.Cut(param, "=")
		if !found || !strcomp.EqualFold(strutil.RStripWS(key), "charset") {
			continue
		}

		value = strutil.LStripWS(value)
		if sep := strings.IndexAny(value, " \t;"); sep != -1 {
			value = value[:sep]
		}

		value = strutil.Unquote(value)
		if len(value) == 0 {
			break
		}

		return strings.ToLower(value)
	}

	return UTF8
}
