package scanner

import (
	"path/filepath"
	"strings"
	"unicode"
)

// PascalCase upper-cases the first character of every word and strips
// whitespace and dashes: "empty-state" -> "EmptyState", "my card" ->
// "MyCard". Word characters are ASCII letters, digits and underscore, so
// "snake_case" keeps its underscore and becomes "Snake_case".
func PascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevWord := false
	for _, r := range s {
		word := isWordRune(r)
		switch {
		case unicode.IsSpace(r), r == '-':
		case word && !prevWord:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		prevWord = word
	}
	return b.String()
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
