// Package kv provides an ordered multimap with case-insensitive keys, serving
// as the backbone for headers, path parameters and alike.
package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts
// as a map but uses linear search instead, which proves to be more efficient on
// relatively low amount of entries, which often enough is the case. Keys are
// matched case-insensitively, insertion order is preserved.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromPairs returns an instance of Storage with the pairs pre-inserted in the
// order given.
func NewFromPairs(pairs ...Pair) *Storage {
	return &Storage{
		pairs: append(make([]Pair, 0, len(pairs)), pairs...),
	}
}

// NewFromMap returns an instance of Storage with already inserted values from
// the given map. Note: as maps are unordered, the resulting entries order is
// unpredictable as well.
func NewFromMap(m map[string][]string) *Storage {
	s := NewPrealloc(len(m))

	for key, values := range m {
		for _, value := range values {
			s.Add(key, value)
		}
	}

	return s
}

// Add appends a new pair of key and value, keeping any previously added pairs
// of the same key.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Value returns the first value, corresponding to the key. Otherwise, empty
// string is returned.
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or the
// fallback value, passed via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns the first value by the key and a bool, indicating whether the
// value was found at all.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns all values by the key in insertion order, nil if the key
// doesn't exist. The returned slice is always freshly allocated.
func (s *Storage) Values(key string) (values []string) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			values = append(values, pair.Value)
		}
	}

	return values
}

// Keys returns all unique keys in order of their first appearance.
func (s *Storage) Keys() (keys []string) {
	for _, pair := range s.pairs {
		if !contains(keys, pair.Key) {
			keys = append(keys, pair.Key)
		}
	}

	return keys
}

// Iter returns an iterator over the pairs in insertion order.
func (s *Storage) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be stored somewhere safely.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs: append(make([]Pair, 0, len(s.pairs)), s.pairs...),
	}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear removes all the entries, keeping the allocated space.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func contains(collection []string, key string) bool {
	for _, element := range collection {
		if strcomp.EqualFold(element, key) {
			return true
		}
	}

	return false
}
