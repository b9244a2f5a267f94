package strutil

import (
	"strconv"
	"strings"
	"unicode"
)

// Plural picks a word form for n. forms are, in order, the plural form
// (default "s"), the singular form (default "") and the zero form
// (default ""). The plural form is used when n > 1, the zero form when
// n == 0, and the singular form otherwise (including negative counts).
func Plural(n int, forms ...string) string {
	plural, singular, zero := pluralForms(forms)
	switch {
	case n > 1:
		return plural
	case n == 0:
		return zero
	default:
		return singular
	}
}

// PluralString is Plural for a count given as text. Only the leading
// integer part of s is read ("3 apples" counts as 3); text without one
// selects the singular form.
func PluralString(s string, forms ...string) string {
	n, ok := leadingInt(s)
	if !ok {
		_, singular, _ := pluralForms(forms)
		return singular
	}
	return Plural(n, forms...)
}

func pluralForms(forms []string) (plural, singular, zero string) {
	plural = "s"
	if len(forms) > 0 {
		plural = forms[0]
	}
	if len(forms) > 1 {
		singular = forms[1]
	}
	if len(forms) > 2 {
		zero = forms[2]
	}
	return plural, singular, zero
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
