package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching: a package
// qualifier ("typeprobe/fsmodel.Folder") and a pointer star are dropped,
// separators are removed and the rest is lower-cased.
func NormalizeIdent(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "*")
	if i := strings.LastIndexAny(s, "./"); i >= 0 {
		s = s[i+1:]
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
