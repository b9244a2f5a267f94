package strutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPlural(t *testing.T) {
	require.Equal(t, "none", Plural(0, "dogs", "dog", "none"))
	require.Equal(t, "dog", Plural(1, "dogs", "dog"))
	require.Equal(t, "dogs", Plural(2, "dogs", "dog"))

	require.Equal(t, "s", Plural(4))
	require.Equal(t, "", Plural(1))
	require.Equal(t, "", Plural(0))
	require.Equal(t, "dog", Plural(-3, "dogs", "dog", "none"))
}

func TestPluralString(t *testing.T) {
	require.Equal(t, "dogs", PluralString("12", "dogs", "dog"))
	require.Equal(t, "dogs", PluralString(" 3 apples", "dogs", "dog"))
	require.Equal(t, "none", PluralString("0", "dogs", "dog", "none"))
	require.Equal(t, "dog", PluralString("many", "dogs", "dog", "none"))
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Hello world", Capitalize("hello world"))
	require.Equal(t, "ÉCOLE", Capitalize("éCOLE"))
	require.Equal(t, "", Capitalize(""))
	require.Equal(t, "Hello World", CapitalizeAll("hello world"))
	require.Equal(t, "A  B", CapitalizeAll("a  b"))
}

func TestToSnakeCase(t *testing.T) {
	require.Equal(t, "hello_big_world", ToSnakeCase("Hello Big WORLD"))
}

func TestStripProtocol(t *testing.T) {
	require.Equal(t, "example.com/a", StripProtocol("https://example.com/a"))
	require.Equal(t, "a.io b.io", StripProtocol("http://a.io https://b.io"))
	require.Equal(t, "ftp://x", StripProtocol("ftp://x"))
}

func TestFullDate(t *testing.T) {
	at := time.Date(2020, time.December, 13, 1, 4, 59, 0, time.UTC)
	require.Equal(t, "202012130104", FullDate(at))
}

func TestBase64(t *testing.T) {
	text, err := ToBase64(map[string]any{"a": 1})
	require.NoError(t, err)
	require.Equal(t, "eyJhIjoxfQ==", text)

	var out map[string]any
	require.NoError(t, FromBase64(text, &out))
	require.Equal(t, map[string]any{"a": float64(1)}, out)

	var empty any
	require.NoError(t, FromBase64("", &empty))
	require.Equal(t, "", empty)

	require.Error(t, FromBase64("%%%", &empty))
}
