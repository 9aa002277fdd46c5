package formdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sluice-web/sluice/config"
	"github.com/sluice-web/sluice/http/form"
	"github.com/sluice-web/sluice/http/status"
)

const boundary = "--WebKitFormBoundary7MA4YWxkTrZu0gW"

func parse(t *testing.T, body string) (form.Form, error) {
	t.Helper()
	return ParseMultipart(config.Default(), nil, []byte(body), nil, boundary)
}

func TestMultipart(t *testing.T) {
	t.Run("real-world example", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; " +
			"name=\"username\"\r\n\r\nAlice\r\n----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nCo" +
			"ntent-Disposition: form-data; name=\"profile_pic\"; filename=\"profile.png\"\r\n" +
			"Content-Type: image/png\r\n\r\n[binary file content]\r\n----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "username", Charset: "utf8", Type: "text/plain", Value: "Alice"},
			{Name: "profile_pic", Filename: "profile.png", Charset: "utf8", Type: "image/png", Value: "[binary file content]"},
		}, parsed)
	})

	t.Run("value with dashes", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"range\"\r\n\r\n" +
			"100--200-300\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		require.Equal(t, "100--200-300", parsed[0].Value)
	})

	t.Run("part charset parameter", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"note\"\r\n" +
			"Content-Type: text/plain; charset=latin1\r\n\r\n" +
			"hola\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "note", Charset: "latin1", Type: "text/plain", Value: "hola"},
		}, parsed)
	})

	t.Run("form-wide charset entry", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"_charset_\"\r\n\r\n" +
			"iso-8859-1\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"greeting\"\r\n\r\n" +
			"hallo\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "greeting", Charset: "iso-8859-1", Type: "text/plain", Value: "hallo"},
		}, parsed)
	})

	t.Run("urlencoded name and filename", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"my+field\"; filename=\"report%202024.txt\"\r\n\r\n" +
			"contents\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		require.Equal(t, "my field", parsed[0].Name)
		require.Equal(t, "report 2024.txt", parsed[0].Filename)
	})

	t.Run("bare line feeds", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\n" +
			"Content-Disposition: form-data; name=\"plain\"\n\n" +
			"value\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Equal(t, "value", parsed[0].Value)
	})

	t.Run("empty form", func(t *testing.T) {
		parsed, err := parse(t, "----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n")
		require.NoError(t, err)
		require.Empty(t, parsed)
	})

	t.Run("closing boundary without line break", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"a\"\r\n\r\n" +
			"1\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Equal(t, "1", parsed[0].Value)
	})

	t.Run("preamble is skipped", func(t *testing.T) {
		body := "this is a preamble, sent by some exotic user-agent\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"Content-Disposition: form-data; name=\"a\"\r\n\r\n" +
			"1\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
	})

	t.Run("unknown part headers are ignored", func(t *testing.T) {
		body := "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\n" +
			"X-Trace-Id: 42\r\n" +
			"Content-Disposition: form-data; name=\"a\"\r\n\r\n" +
			"1\r\n" +
			"----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n"

		parsed, err := parse(t, body)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
	})

	t.Run("malformed", func(t *testing.T) {
		samples := map[string]string{
			"no boundary":        "just some text",
			"no disposition":     "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Type: text/plain\r\n\r\nvalue\r\n----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n",
			"unterminated part":  "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\nvalue",
			"empty charset":      "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; name=\"_charset_\"\r\n\r\n\r\n----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n",
			"empty name":         "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; name=\"\"\r\n\r\nvalue\r\n----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n",
			"truncated headers":  "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; name=\"a\"",
			"space in parameter": "----WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; name=not quoted\r\n\r\nvalue\r\n----WebKitFormBoundary7MA4YWxkTrZu0gW--\r\n",
		}

		for name, body := range samples {
			t.Run(name, func(t *testing.T) {
				_, err := parse(t, body)
				require.ErrorIs(t, err, status.ErrBadRequest)
			})
		}
	})

	t.Run("long boundary", func(t *testing.T) {
		long := strings.Repeat("b", 600)
		body := "--" + long + "\r\n" +
			"Content-Disposition: form-data; name=\"a\"\r\n\r\n" +
			"1\r\n" +
			"--" + long + "--\r\n"

		parsed, err := ParseMultipart(config.Default(), nil, []byte(body), nil, long)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
	})
}
