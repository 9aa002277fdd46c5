package formdata

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sluice-web/sluice/http/form"
	"github.com/sluice-web/sluice/http/status"
)

func TestParseURLEncoded(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		result, _, err := ParseURLEncoded(nil, []byte("hello=world"), nil)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "hello", Value: "world"},
		}, result)
	})

	t.Run("two pairs", func(t *testing.T) {
		result, _, err := ParseURLEncoded(nil, []byte("hello=world&lorem=ipsum"), nil)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "hello", Value: "world"},
			{Name: "lorem", Value: "ipsum"},
		}, result)
	})

	t.Run("empty value before ampersand", func(t *testing.T) {
		result, _, err := ParseURLEncoded(nil, []byte("hello=&another=pair"), nil)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "hello"},
			{Name: "another", Value: "pair"},
		}, result)
	})

	t.Run("single entry without value", func(t *testing.T) {
		result, _, err := ParseURLEncoded(nil, []byte("hello="), nil)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "hello"},
		}, result)
	})

	t.Run("empty key", func(t *testing.T) {
		_, _, err := ParseURLEncoded(nil, []byte("=world"), nil)
		require.ErrorIs(t, err, status.ErrBadEncoding)
	})

	t.Run("ampersand without continuation at the end", func(t *testing.T) {
		result, _, err := ParseURLEncoded(nil, []byte("hello=world&"), nil)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "hello", Value: "world"},
		}, result)
	})

	t.Run("flags", func(t *testing.T) {
		for _, sample := range []string{
			"lorem&hello=world&foo=bar",
			"hello=world&lorem&foo=bar",
			"hello=world&foo=bar&lorem",
		} {
			result, _, err := ParseURLEncoded(nil, []byte(sample), nil)
			require.NoError(t, err, sample)
			require.Len(t, result, 3, sample)

			entry, found := result.Name("lorem")
			require.True(t, found, sample)
			require.Empty(t, entry.Value, sample)
		}
	})

	t.Run("urlencoded content", func(t *testing.T) {
		result, _, err := ParseURLEncoded(nil, []byte("na+me=v%20lue"), nil)
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "na me", Value: "v lue"},
		}, result)
	})

	t.Run("bad percent sequence", func(t *testing.T) {
		_, _, err := ParseURLEncoded(nil, []byte("hello=%5"), nil)
		require.ErrorIs(t, err, status.ErrBadEncoding)
	})

	t.Run("appends to existing form", func(t *testing.T) {
		existing := form.Form{{Name: "prior", Value: "entry"}}
		result, _, err := ParseURLEncoded(existing, []byte("hello=world"), nil)
		require.NoError(t, err)
		require.Len(t, result, 2)
		require.Equal(t, "prior", result[0].Name)
	})
}
