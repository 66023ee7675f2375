package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase lowercases the input and uppercases the first letter of each
// whitespace-delimited token. Applied to every free-text display field
// before rendering. First letters are decoded as runes, so non-ASCII
// names title-case correctly.
func TitleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = string(unicode.ToUpper(r)) + f[size:]
	}
	return strings.Join(fields, " ")
}

// UpperSKU normalizes a SKU for display. SKUs are uppercased whole, not
// title-cased.
func UpperSKU(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
