package strutil

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var protocolPattern = regexp.MustCompile(`https?://`)

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// CapitalizeAll capitalizes every space-separated word of s.
func CapitalizeAll(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// ToSnakeCase replaces every space with an underscore and lower-cases the
// result.
func ToSnakeCase(s string) string {
	return cases.Lower(language.Und).String(strings.ReplaceAll(s, " ", "_"))
}

// StripProtocol removes every http:// and https:// occurrence from s.
func StripProtocol(s string) string {
	return protocolPattern.ReplaceAllString(s, "")
}

// FullDate formats t as YYYYMMDDhhmm in t's location, e.g. "202012130104".
func FullDate(t time.Time) string {
	return t.Format("200601021504")
}
