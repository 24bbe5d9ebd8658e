package text

import (
	"regexp"
	"strings"
)

// Work-order instructions arrive as free-form Danish with part codes, units
// and punctuation mixed in. Normalization keeps lowercase letters (including
// the Danish vowels), digits and whitespace; everything else becomes a space
// so that token boundaries survive.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9åæø\s]`)

// Normalize lowercases s and replaces every character outside the Danish
// alphanumeric alphabet with a space.
func Normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), " ")
}
