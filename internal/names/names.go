// Package names canonicalizes free-text recipe and ingredient names so
// they can be compared and stored consistently.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase reformats a name to title case: each whitespace-separated
// word starts with an upper-case rune and continues lower-case, joined
// back together with single spaces. Surrounding whitespace is dropped,
// so blank input yields the empty string. The result is stable under
// repeated application.
func TitleCase(input string) string {
	words := strings.Fields(input)
	for i, word := range words {
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError && size <= 1 {
		return word
	}
	return string(unicode.ToTitle(first)) + strings.ToLower(word[size:])
}

// SplitCSV turns a comma-separated parameter value into its trimmed,
// non-blank entries. An empty input yields no entries.
func SplitCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(csv, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, trimmed)
	}
	return values
}
