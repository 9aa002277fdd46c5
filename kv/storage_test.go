package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("case-insensitive lookup", func(t *testing.T) {
		s := New().Add("Content-Type", "text/html")
		require.Equal(t, "text/html", s.Value("content-type"))
		require.Equal(t, "text/html", s.Value("CONTENT-TYPE"))
		require.True(t, s.Has("Content-type"))
	})

	t.Run("first value wins", func(t *testing.T) {
		s := New().
			Add("Accept", "text/html").
			Add("accept", "application/json")
		require.Equal(t, "text/html", s.Value("accept"))
	})

	t.Run("values preserve order", func(t *testing.T) {
		s := New().
			Add("Set-Cookie", "a=1").
			Add("Host", "localhost").
			Add("set-cookie", "b=2")
		require.Equal(t, []string{"a=1", "b=2"}, s.Values("set-cookie"))
	})

	t.Run("values are independent snapshots", func(t *testing.T) {
		s := New().
			Add("Via", "alpha").
			Add("Via", "beta")
		first := s.Values("via")
		second := s.Values("via")
		second[0] = "overwritten"
		require.Equal(t, []string{"alpha", "beta"}, first)
	})

	t.Run("missing key", func(t *testing.T) {
		s := New()
		require.Empty(t, s.Value("anything"))
		require.Equal(t, "fallback", s.ValueOr("anything", "fallback"))
		require.Nil(t, s.Values("anything"))
		require.False(t, s.Has("anything"))

		_, found := s.Get("anything")
		require.False(t, found)
	})

	t.Run("keys are unique case-insensitively", func(t *testing.T) {
		s := New().
			Add("Host", "localhost").
			Add("Accept", "*/*").
			Add("host", "example.com")
		require.Equal(t, []string{"Host", "Accept"}, s.Keys())
	})

	t.Run("iter walks in insertion order", func(t *testing.T) {
		s := NewFromPairs(
			Pair{"a", "1"},
			Pair{"b", "2"},
			Pair{"a", "3"},
		)

		var got []Pair
		for k, v := range s.Iter() {
			got = append(got, Pair{k, v})
		}

		require.Equal(t, s.Expose(), got)
	})

	t.Run("from map", func(t *testing.T) {
		s := NewFromMap(map[string][]string{
			"Host": {"localhost"},
			"Via":  {"alpha", "beta"},
		})
		require.Equal(t, 3, s.Len())
		require.Equal(t, []string{"alpha", "beta"}, s.Values("via"))
	})

	t.Run("clone is deep", func(t *testing.T) {
		s := New().Add("Host", "localhost")
		c := s.Clone().Add("Accept", "*/*")
		require.Equal(t, 1, s.Len())
		require.Equal(t, 2, c.Len())
	})

	t.Run("clear keeps nothing", func(t *testing.T) {
		s := New().Add("Host", "localhost").Clear()
		require.True(t, s.Empty())
		require.Zero(t, s.Len())
	})
}
