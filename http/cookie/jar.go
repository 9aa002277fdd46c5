package cookie

import (
	"errors"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/indigo-web/utils/strcomp"
	"github.com/sluice-web/sluice/internal/strutil"
)

var (
	ErrBadCookie    = errors.New("cookie has a malformed syntax")
	ErrNoSuchCookie = errors.New("no cookie by the name")
)

// Jar is an ordered storage of cookies, keyed by their names. Setting a cookie
// by an already present name replaces the previous one in place, so each name
// appears at most once.
type Jar struct {
	cookies []Cookie
}

func NewJar() *Jar {
	return new(Jar)
}

func NewJarPrealloc(n int) *Jar {
	return &Jar{
		cookies: make([]Cookie, 0, n),
	}
}

// Set inserts the cookie, replacing any previously held one of the same name.
func (j *Jar) Set(c Cookie) *Jar {
	for i, held := range j.cookies {
		if held.Name == c.Name {
			j.cookies[i] = c
			return j
		}
	}

	j.cookies = append(j.cookies, c)
	return j
}

// Get returns a cookie by its name.
func (j *Jar) Get(name string) (Cookie, bool) {
	for _, c := range j.cookies {
		if c.Name == name {
			return c, true
		}
	}

	return Cookie{}, false
}

// Value returns the value of a cookie by its name, an empty string if there
// is none.
func (j *Jar) Value(name string) string {
	c, _ := j.Get(name)
	return c.Value
}

func (j *Jar) Has(name string) bool {
	_, found := j.Get(name)
	return found
}

// Remove deletes a cookie by its name, reporting ErrNoSuchCookie if the jar
// holds none.
func (j *Jar) Remove(name string) error {
	for i, c := range j.cookies {
		if c.Name == name {
			j.cookies = append(j.cookies[:i], j.cookies[i+1:]...)
			return nil
		}
	}

	return ErrNoSuchCookie
}

// Iter returns an iterator over the held cookies in insertion order.
func (j *Jar) Iter() iter.Seq[Cookie] {
	return func(yield func(Cookie) bool) {
		for _, c := range j.cookies {
			if !yield(c) {
				return
			}
		}
	}
}

func (j *Jar) Len() int {
	return len(j.cookies)
}

func (j *Jar) Empty() bool {
	return j.Len() == 0
}

func (j *Jar) Clear() *Jar {
	j.cookies = j.cookies[:0]
	return j
}

// Parse parses cookies, received from a user-agent. These are basically key-value
// pairs, so the function isn't applicable for Set-Cookie values. Pairs arriving
// later override earlier ones of the same name.
func Parse(jar *Jar, data string) (err error) {
	for len(data) > 0 {
		eq := strings.IndexByte(data, '=')
		if eq == -1 {
			break
		}

		key := data[:eq]
		data = data[eq+1:]

		if len(key) == 0 {
			return ErrBadCookie
		}

		var value string

		if cs := strings.IndexByte(data, ';'); cs != -1 {
			value, data = data[:cs], stripSpace(data[cs+1:])
		} else {
			value, data = data, ""
		}

		// empty value is fine (probably, I have no idea if it's so)
		jar.Set(New(key, value))
	}

	if len(data) != 0 {
		return ErrBadCookie
	}

	return nil
}

// ParseSetCookie parses a single Set-Cookie header value into a cookie.
// Attribute names are matched case-insensitively, unknown ones are ignored.
func ParseSetCookie(data string) (Cookie, error) {
	pair, attrs := strutil.CutHeader(data)
	eq := strings.IndexByte(pair, '=')
	if eq < 1 {
		return Cookie{}, ErrBadCookie
	}

	c := New(strutil.RStripWS(pair[:eq]), strutil.Unquote(pair[eq+1:]))

	for len(attrs) > 0 {
		var attr string
		if cs := strings.IndexByte(attrs, ';'); cs != -1 {
			attr, attrs = attrs[:cs], strutil.LStripWS(attrs[cs+1:])
		} else {
			attr, attrs = attrs, ""
		}

		key, value, _ := strings.Cut(attr, "=")
		key = strutil.RStripWS(key)
		value = strutil.Unquote(strutil.RStripWS(value))

		switch {
		case strcomp.EqualFold(key, "path"):
			c.Path = value
		case strcomp.EqualFold(key, "domain"):
			c.Domain = value
		case strcomp.EqualFold(key, "expires"):
			expires, err := parseExpiry(value)
			if err != nil {
				return Cookie{}, ErrBadCookie
			}

			c.Expires = expires
		case strcomp.EqualFold(key, "max-age"):
			seconds, err := strconv.Atoi(value)
			if err != nil {
				return Cookie{}, ErrBadCookie
			}

			if seconds <= 0 {
				seconds = -1
			}

			c.MaxAge = seconds
		case strcomp.EqualFold(key, "samesite"):
			c.SameSite = canonicalSameSite(value)
		case strcomp.EqualFold(key, "secure"):
			c.Secure = true
		case strcomp.EqualFold(key, "httponly"):
			c.HttpOnly = true
		}
	}

	return c, nil
}

// expiryFormats covers the preferred RFC 1123 GMT representation along the
// legacy Netscape one with dashes in the date.
var expiryFormats = [...]string{time.RFC1123, "Mon, 02-Jan-2006 15:04:05 MST"}

func parseExpiry(value string) (time.Time, error) {
	var err error

	for _, format := range expiryFormats {
		var expires time.Time
		expires, err = time.Parse(format, value)
		if err == nil {
			return expires, nil
		}
	}

	return time.Time{}, err
}

func canonicalSameSite(value string) SameSite {
	switch {
	case strcomp.EqualFold(value, SameSiteLax):
		return SameSiteLax
	case strcomp.EqualFold(value, SameSiteStrict):
		return SameSiteStrict
	case strcomp.EqualFold(value, SameSiteNone):
		return SameSiteNone
	default:
		return value
	}
}

func stripSpace(str string) string {
	if len(str) > 0 && str[0] == ' ' {
		return str[1:]
	}

	return str
}
