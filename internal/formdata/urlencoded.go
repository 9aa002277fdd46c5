// Package formdata parses form bodies, urlencoded and multipart alike, into
// the common form.Form representation.
package formdata

import (
	"github.com/sluice-web/sluice/http/form"
	"github.com/sluice-web/sluice/internal/qparams"
	"github.com/sluice-web/sluice/internal/urlencoded"
)

// ParseURLEncoded appends entries of an application/x-www-form-urlencoded body
// to the form. The buffer is used for urldecoding and returned back possibly
// grown, so it can be recycled by the caller.
func ParseURLEncoded(into form.Form, data, buff []byte) (form.Form, []byte, error) {
	buff, err := qparams.Parse(data, buff, func(k, v string) {
		into = append(into, form.Data{
			Name:  k,
			Value: v,
		})
	}, urlencoded.ExtendedDecode, "")

	return into, buff, err
}
