package strutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoveAccents strips diacritics from s. Vietnamese đ/Đ are not combining
// marks, so they get mapped separately.
func RemoveAccents(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "đ", "d")
	return strings.ReplaceAll(out, "Đ", "D")
}

// Fold normalizes s for accent- and case-insensitive comparison.
func Fold(s string) string {
	return strings.ToLower(RemoveAccents(s))
}

// ContainsFold reports whether needle occurs in haystack ignoring case and
// accents. An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
