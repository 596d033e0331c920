package gemini

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// StripBold removes markdown bold markers ("**text**" becomes "text") and
// trims surrounding whitespace.
func StripBold(s string) string {
	return strings.TrimSpace(boldPattern.ReplaceAllString(s, "${1}"))
}
