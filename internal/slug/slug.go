package slug

import (
	"regexp"
	"strings"
)

const maxProductSlugLen = 100

var (
	nonWord     = regexp.MustCompile(`[^\w\s-]`)
	nonSlugChar = regexp.MustCompile(`[^a-z0-9 -]`)
	whitespace  = regexp.MustCompile(`\s+`)
	hyphenRun   = regexp.MustCompile(`-+`)
)

// Slugify normalizes arbitrary text into a URL-safe token: lowercase,
// word characters only, whitespace runs collapsed to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ForProduct derives a product page slug from a title. Stricter than
// Slugify: ASCII alphanumerics only, capped at 100 characters. Fully
// symbolic input yields "".
func ForProduct(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChar.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxProductSlugLen {
		s = s[:maxProductSlugLen]
		// Truncation can land on a hyphen
		s = strings.TrimRight(s, "-")
	}
	return s
}
