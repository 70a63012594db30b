package match

import (
	"fmt"
	"strings"
	"unicode"
)

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.6

// Normalize folds case and drops '_', '-', '.' and spaces, so that
// "mapped_superclass", "MappedSuperclass" and "mapped-superclass" compare
// equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Closest returns the candidate most similar to name. Ties go to the
// earlier candidate. ok is false when nothing reaches MinSimilarity or when
// name already equals a candidate.
func Closest(name string, candidates []string) (best string, ok bool) {
	score := MinSimilarity

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		if s := Similarity(name, c); s >= score && (!ok || s > score) {
			best, score, ok = c, s, true
		}
	}

	return best, ok
}

// Hint formats a " (did you mean X?)" suffix for name, or returns "" when
// there is no close candidate.
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", best)
}
