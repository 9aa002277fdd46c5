package http

import (
	"time"

	"github.com/sluice-web/sluice/config"
	"github.com/sluice-web/sluice/http/cookie"
	"github.com/sluice-web/sluice/http/status"
	"github.com/sluice-web/sluice/kv"
)

// Response represents an HTTP response.
type Response struct {
	Message

	// Code is the response status code.
	Code status.Code

	cookies cookieCache
}

// NewResponse assembles a response around the received head. Status codes
// forbidden to carry a body (1xx, 204, 304) come out complete regardless of
// the headers.
func NewResponse(
	cfg *config.Config, code status.Code, headers *kv.Storage, content Content,
) *Response {
	response := &Response{Code: code}
	response.Message.init(cfg, headers, content)

	if code.Bodyless() {
		response.forceNoBody()
	}

	return response
}

// Cookies parses all the Set-Cookie headers into a jar once and keeps it,
// attributes included. Headers arriving later override earlier ones of the
// same cookie name.
func (r *Response) Cookies() (*cookie.Jar, error) {
	jar, err := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	if err != nil {
		return nil, err
	}

	return jar, nil
}

// SetCookie inserts the cookie into the jar, overriding any already held one
// of the same name.
func (r *Response) SetCookie(c cookie.Cookie) {
	jar, _ := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	jar.Set(c)
}

// SetCookies inserts every passed cookie the way SetCookie does.
func (r *Response) SetCookies(cookies ...cookie.Cookie) {
	for _, c := range cookies {
		r.SetCookie(c)
	}
}

// RemoveCookie drops the cookie from the jar entirely, so the client isn't
// told anything about it. Removing one that was never there reports
// cookie.ErrNoSuchCookie.
func (r *Response) RemoveCookie(name string) error {
	jar, err := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	if err != nil {
		return err
	}

	return jar.Remove(name)
}

// UnsetCookie replaces the cookie with an empty-valued one, expired a year
// ago. That is the conventional way of instructing the client to delete it.
func (r *Response) UnsetCookie(name string) {
	jar, _ := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	jar.Set(cookie.Build(name, "").
		Expires(time.Now().AddDate(-1, 0, 0)).
		Cookie())
}

func (r *Response) fillCookies(jar *cookie.Jar) error {
	for _, value := range r.Headers.Values("set-cookie") {
		c, err := cookie.ParseSetCookie(value)
		if err != nil {
			return err
		}

		jar.Set(c)
	}

	return nil
}
