package model

import (
	"strings"
	"unicode"
)

// PlaceholderName is used when a prompt has no name and no content worth
// deriving one from.
const PlaceholderName = "Untitled Prompt"

const (
	nameWordLimit = 6
	nameRuneLimit = 50
)

// DeriveName builds a prompt name from its content: the first few
// whitespace-delimited words, cleaned of punctuation, truncated with a
// trailing ellipsis when long. Returns PlaceholderName if nothing usable
// remains.
func DeriveName(content string) string {
	words := strings.Fields(content)
	if len(words) > nameWordLimit {
		words = words[:nameWordLimit]
	}
	name := strings.Join(words, " ")

	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	// Stripping can leave doubled spaces ("foo & bar" -> "foo  bar").
	name = strings.Join(strings.Fields(b.String()), " ")

	if r := []rune(name); len(r) > nameRuneLimit {
		name = string(r[:nameRuneLimit]) + "..."
	}
	if name == "" {
		return PlaceholderName
	}
	return name
}
