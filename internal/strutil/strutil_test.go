package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(data string) (pairs [][2]string) {
	for k, v := range WalkKV(data) {
		pairs = append(pairs, [2]string{k, v})
	}

	return pairs
}

func TestWalkKV(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		require.Equal(t, [][2]string{{"hello", "world"}}, collect("hello=world"))
	})

	t.Run("multiple pairs", func(t *testing.T) {
		require.Equal(t, [][2]string{
			{"charset", "utf8"},
			{"boundary", "kitty"},
		}, collect("charset=utf8; boundary=kitty"))
	})

	t.Run("quoted value", func(t *testing.T) {
		require.Equal(t, [][2]string{{"boundary", "kit=ty"}}, collect(`boundary="kit=ty"`))
	})

	t.Run("valueless key", func(t *testing.T) {
		require.Equal(t, [][2]string{{"lonely", ""}}, collect("lonely"))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Equal(t, [][2]string{{"", ""}}, collect(""))
	})

	t.Run("unsafe char in key", func(t *testing.T) {
		require.Equal(t, [][2]string{{"", ""}}, collect("hel lo=world"))
	})

	t.Run("unsafe char in value", func(t *testing.T) {
		require.Equal(t, [][2]string{{"", ""}}, collect("hello=wor ld"))
	})
}

func TestCutHeader(t *testing.T) {
	t.Run("no params", func(t *testing.T) {
		value, params := CutHeader("text/html")
		require.Equal(t, "text/html", value)
		require.Empty(t, params)
	})

	t.Run("single param", func(t *testing.T) {
		value, params := CutHeader("text/html; charset=utf8")
		require.Equal(t, "text/html", value)
		require.Equal(t, "charset=utf8", params)
	})

	t.Run("multiple params", func(t *testing.T) {
		value, params := CutHeader("multipart/form-data;   boundary=kitty; charset=utf8")
		require.Equal(t, "multipart/form-data", value)
		require.Equal(t, "boundary=kitty; charset=utf8", params)
	})
}

func TestStripWS(t *testing.T) {
	require.Equal(t, "hello", LStripWS(" \t hello"))
	require.Equal(t, "hello", RStripWS("hello \t "))
	require.Equal(t, "", LStripWS("  \t"))
	require.Equal(t, "", RStripWS("\t  "))
	require.Equal(t, "un touched", LStripWS(RStripWS("un touched")))
}

func TestTokens(t *testing.T) {
	gather := func(list string) (items []string) {
		for item := range Tokens(list) {
			items = append(items, item)
		}

		return items
	}

	require.Equal(t, []string{"gzip"}, gather("gzip"))
	require.Equal(t, []string{"gzip", "br"}, gather("gzip, br"))
	require.Equal(t, []string{"gzip", "br"}, gather(" gzip ,\tbr "))
	require.Equal(t, []string{"a", "b"}, gather("a,,b,"))
	require.Nil(t, gather(""))
	require.Nil(t, gather(" , "))
}

func TestUnquote(t *testing.T) {
	require.Equal(t, "hello", Unquote(`"hello"`))
	require.Equal(t, "hello", Unquote("hello"))
	require.Equal(t, `"`, Unquote(`"`))
	require.Equal(t, "", Unquote(`""`))
	require.Equal(t, `"half`, Unquote(`"half`))
}
