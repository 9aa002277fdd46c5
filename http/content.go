package http

import (
	"net/url"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
	"github.com/sluice-web/sluice/http/form"
	"github.com/sluice-web/sluice/http/mime"
	"github.com/sluice-web/sluice/kv"
	"github.com/valyala/bytebufferpool"
)

// Content is an already fully known body alongside its media type. Passing it
// to a message constructor fills the body in and, given it isn't empty,
// completes the message on the spot.
type Content struct {
	// Type is the declared media type. It backs up ContentType() of messages
	// whose headers carry no Content-Type.
	Type mime.MIME
	// Body is the payload itself.
	Body []byte
}

// NoContent is passed to constructors of messages whose body is yet to arrive.
var NoContent = Content{}

func NewContent(contentType mime.MIME, body []byte) Content {
	return Content{Type: contentType, Body: body}
}

func TextContent(text string) Content {
	return Content{Type: mime.Plain, Body: uf.S2B(text)}
}

func HTMLContent(text string) Content {
	return Content{Type: mime.HTML, Body: uf.S2B(text)}
}

// JSONContent encodes the model into a JSON content.
func JSONContent(model any) (Content, error) {
	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	stream := json.ConfigDefault.BorrowStream(buff)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)
	if err != nil {
		return Content{}, err
	}

	return Content{Type: mime.JSON, Body: append([]byte(nil), buff.B...)}, nil
}

// FormContent renders the pairs as an urlencoded form content.
func FormContent(params *kv.Storage) Content {
	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	for key, value := range params.Iter() {
		if buff.Len() > 0 {
			buff.WriteByte('&')
		}

		buff.WriteString(url.QueryEscape(key))
		buff.WriteByte('=')
		buff.WriteString(url.QueryEscape(value))
	}

	return Content{Type: mime.FormUrlencoded, Body: append([]byte(nil), buff.B...)}
}

// MultipartContent renders the form as a multipart content under a freshly
// generated boundary. The boundary is advertised via the content type.
func MultipartContent(f form.Form) Content {
	boundary := uniuri.New()
	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	for _, entry := range f {
		buff.WriteString("--")
		buff.WriteString(boundary)
		buff.WriteString("\r\nContent-Disposition: form-data; name=\"")
		buff.WriteString(url.QueryEscape(entry.Name))
		buff.WriteByte('"')

		if len(entry.Filename) > 0 {
			buff.WriteString("; filename=\"")
			buff.WriteString(url.QueryEscape(entry.Filename))
			buff.WriteByte('"')
		}

		buff.WriteString("\r\n")

		if len(entry.Type) > 0 {
			buff.WriteString("Content-Type: ")
			buff.WriteString(entry.Type)

			if len(entry.Charset) > 0 {
				buff.WriteString("; charset=")
				buff.WriteString(entry.Charset)
			}

			buff.WriteString("\r\n")
		}

		buff.WriteString("\r\n")
		buff.WriteString(entry.Value)
		buff.WriteString("\r\n")
	}

	buff.WriteString("--")
	buff.WriteString(boundary)
	buff.WriteString("--\r\n")

	return Content{
		Type: mime.Multipart + "; boundary=" + boundary,
		Body: append([]byte(nil), buff.B...),
	}
}
