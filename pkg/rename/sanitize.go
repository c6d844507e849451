// Package rename plans title-derived filenames for exported pages.
//
// Planning is a single pass over the tree: every page contributes its
// sanitized title as a name candidate, colliding candidates pick up numeric
// suffixes, and the finished map is consulted read-only by the link
// rewriter.
package rename

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

// maxNameRunes caps generated filename stems, extension excluded.
const maxNameRunes = 100

// forbiddenRunes are characters filenames cannot contain on common
// filesystems.
const forbiddenRunes = `\/:*?"<>|`

// Sanitize turns a page title into a filesystem-safe filename stem. An empty
// result means nothing usable remains and the page keeps its original name.
func Sanitize(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if normalized, err := slug.Normalize(title); err == nil && normalized != "" {
		return capRunes(normalized)
	}
	return capRunes(fallbackName(title))
}

// fallbackName keeps titles that defeat slug normalization usable: forbidden
// and control characters are dropped, whitespace runs collapse to a single
// hyphen, letters are lowercased.
func fallbackName(title string) string {
	var b strings.Builder
	pendingGap := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			pendingGap = true
		case unicode.IsControl(r) || strings.ContainsRune(forbiddenRunes, r):
			// dropped
		default:
			if pendingGap && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingGap = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Trim(b.String(), "-.")
}

func capRunes(name string) string {
	runes := []rune(name)
	if len(runes) > maxNameRunes {
		name = string(runes[:maxNameRunes])
	}
	return strings.TrimRight(name, "-.")
}
