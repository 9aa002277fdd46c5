package http

import (
	"net/url"
	"sync"

	"github.com/sluice-web/sluice/config"
	"github.com/sluice-web/sluice/http/cookie"
	"github.com/sluice-web/sluice/http/method"
	"github.com/sluice-web/sluice/http/query"
	"github.com/sluice-web/sluice/kv"
)

type Vars = *kv.Storage

// Request represents an HTTP request.
type Request struct {
	Message

	// Method is an enum representing the request method.
	Method method.Method
	// Target is the request target exactly as it was received.
	Target string
	// URL is the parsed form of the target.
	URL *url.URL
	// Query provides lazy access to the query parameters of the target.
	Query *query.Query
	// ClientIP names the originator of the request, as well as the routing
	// layer could tell. May be empty.
	ClientIP string
	// Vars are dynamic routing values, opaque to the message itself. Never nil.
	Vars Vars

	cookies cookieCache
}

// NewRequest assembles a request around the received head. The target is
// parsed on the spot, so a malformed one fails the construction. Bodyless-by-
// convention methods (GET, HEAD, TRACE) never wait for a body and come out
// complete regardless of the headers.
func NewRequest(
	cfg *config.Config, m method.Method, target string, headers *kv.Storage, content Content,
) (*Request, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	request := &Request{
		Method: m,
		Target: target,
		URL:    u,
		Vars:   kv.New(),
	}
	request.Message.init(cfg, headers, content)
	request.Query = query.New(request.cfg, u.RawQuery)

	if m.Bodyless() {
		request.forceNoBody()
	}

	return request, nil
}

// Cookies parses all the Cookie headers into a jar once and keeps it. Pairs
// arriving later override earlier ones of the same name.
func (r *Request) Cookies() (*cookie.Jar, error) {
	jar, err := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	if err != nil {
		return nil, err
	}

	return jar, nil
}

// SetCookie inserts the cookie into the jar, overriding any already held one
// of the same name.
func (r *Request) SetCookie(c cookie.Cookie) {
	jar, _ := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	jar.Set(c)
}

// SetCookies inserts every passed cookie the way SetCookie does.
func (r *Request) SetCookies(cookies ...cookie.Cookie) {
	for _, c := range cookies {
		r.SetCookie(c)
	}
}

// UnsetCookie removes the cookie from the jar. Removing one that was never
// there reports cookie.ErrNoSuchCookie.
func (r *Request) UnsetCookie(name string) error {
	jar, err := r.cookies.materialize(r.cfg.Headers.CookiesPrealloc, r.fillCookies)
	if err != nil {
		return err
	}

	return jar.Remove(name)
}

func (r *Request) fillCookies(jar *cookie.Jar) error {
	// RFC 6265, 5.4 prohibits splitting cookies into multiple header fields,
	// yet HTTP/2 explicitly allows it. Parsing all the fields covers both.
	for _, value := range r.Headers.Values("cookie") {
		if err := cookie.Parse(jar, value); err != nil {
			return err
		}
	}

	return nil
}

// cookieCache materializes a cookie jar exactly once, memoizing the parse
// error alongside.
type cookieCache struct {
	once sync.Once
	jar  *cookie.Jar
	err  error
}

func (c *cookieCache) materialize(prealloc int, fill func(*cookie.Jar) error) (*cookie.Jar, error) {
	c.once.Do(func() {
		c.jar = cookie.NewJarPrealloc(prealloc)
		c.err = fill(c.jar)
	})

	return c.jar, c.err
}
