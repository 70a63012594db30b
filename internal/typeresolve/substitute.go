package typeresolve

import (
	"strings"
	"unicode"
)

// Substitute replaces every identifier in expr that names a bound type
// parameter. Qualified selectors ("pkg.T") are never substituted on the
// right-hand side of the dot; a variadic "...T" is.
func Substitute(expr string, bindings map[string]string) string {
	if len(bindings) == 0 || expr == "" {
		return expr
	}

	var sb strings.Builder

	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		if !isIdentStart(r) {
			sb.WriteRune(r)
			i++

			continue
		}

		j := i + 1
		for j < len(runes) && isIdentPart(runes[j]) {
			j++
		}

		ident := string(runes[i:j])
		qualified := isSelector(runes, i)

		if v, ok := bindings[ident]; ok && !qualified {
			sb.WriteString(v)
		} else {
			sb.WriteString(ident)
		}

		i = j
	}

	return sb.String()
}

// isSelector reports whether the identifier at i follows a selector dot
// rather than a "..." ellipsis.
func isSelector(runes []rune, i int) bool {
	if i == 0 || runes[i-1] != '.' {
		return false
	}

	return !strings.HasSuffix(string(runes[:i]), "...")
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
