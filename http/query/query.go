// Package query provides lazy access to URL query parameters.
package query

import (
	"errors"

	"github.com/indigo-web/utils/uf"
	"github.com/sluice-web/sluice/config"
	"github.com/sluice-web/sluice/internal/qparams"
	"github.com/sluice-web/sluice/internal/urlencoded"
	"github.com/sluice-web/sluice/kv"
)

var ErrNoSuchKey = errors.New("no entry by the key")

type Params = *kv.Storage

// Query is a lazy wrapper over the raw query string. Parameters aren't parsed
// until requested for the first time, the outcome is memoized, errors included.
type Query struct {
	parsed bool
	err    error
	params Params
	cfg    *config.Config
	raw    string
}

func New(cfg *config.Config, raw string) *Query {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Query{
		cfg: cfg,
		raw: raw,
	}
}

// Get returns a parameter value by its key. Absent keys are reported via
// ErrNoSuchKey, a malformed query via status.ErrBadEncoding.
func (q *Query) Get(key string) (value string, err error) {
	params, err := q.Unwrap()
	if err != nil {
		return "", err
	}

	value, found := params.Get(key)
	if !found {
		return "", ErrNoSuchKey
	}

	return value, nil
}

// Has reports whether a parameter of the key exists. Malformed queries have
// no parameters at all.
func (q *Query) Has(key string) bool {
	params, err := q.Unwrap()
	return err == nil && params.Has(key)
}

// Unwrap parses the query if not yet and returns all the parameters. A nil
// storage is returned alongside the error if parsing failed.
func (q *Query) Unwrap() (Params, error) {
	if !q.parsed {
		q.parsed = true
		q.params, q.err = q.parse()
	}

	return q.params, q.err
}

// Raw returns the raw query string as it was passed in.
func (q *Query) Raw() string {
	return q.raw
}

func (q *Query) parse() (Params, error) {
	params := kv.NewPrealloc(q.cfg.Query.ParamsPrealloc)
	_, err := qparams.Parse(
		uf.S2B(q.raw), nil, qparams.Into(params),
		urlencoded.ExtendedDecode, q.cfg.Query.DefaultFlagValue,
	)
	if err != nil {
		return nil, err
	}

	return params, nil
}
