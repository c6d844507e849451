package zim

import "strings"

// ExtractTitle finds the leading level-1 heading of a page. Blank lines
// before the heading are allowed. It returns the heading text, the index of
// the first heading line, and how many lines the heading spans: 1 for an Atx
// heading, 2 for a Setext pair. A span of 0 means the page has no leading
// title.
func ExtractTitle(lines []string) (title string, start, span int) {
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) {
		return "", 0, 0
	}

	if m := atxTitleRx.FindStringSubmatch(lines[i]); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			return text, i, 1
		}
		return "", 0, 0
	}
	if i+1 < len(lines) && isUnderline(lines[i+1], '=') {
		return strings.TrimSpace(lines[i]), i, 2
	}
	return "", 0, 0
}
