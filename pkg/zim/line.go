// Package zim rewrites the Markdown dialect produced by Zim's exporter into
// the dialect Obsidian understands.
//
// The transformer is a line-oriented state machine: one line of lookahead for
// Setext headings, a mode flag for fenced code and verbatim runs, and
// single-line rewrites for everything else. It never parses Markdown into a
// tree; content inside code passes through byte for byte.
package zim

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// fenceMarker toggles fenced-code mode when a line starts with it.
	fenceMarker = "```"

	// inlineCodeMarker encloses inline code in backticks mode.
	inlineCodeMarker = "`"
)

// checkboxStates maps each Zim checkbox glyph to its Obsidian task state.
//
//nolint:gochecknoglobals // Read-only lookup table.
var checkboxStates = map[rune]string{
	'☐': " ",
	'☑': "x",
	'☒': "c",
	'▷': ">",
	'◁': "<",
}

//nolint:gochecknoglobals // Compiled once.
var (
	// checkboxRx matches a Zim checkbox glyph together with the list
	// markers Zim puts in front of it. The whole span collapses into a
	// single "- [state]" item.
	checkboxRx = regexp.MustCompile(`(\* )*[☐☑☒▷◁]`)

	// highlightRx matches Zim highlighting.
	highlightRx = regexp.MustCompile(`__(.+?)__`)

	// tagRx matches the first character of a Zim @tag. The \B guard keeps
	// the @ inside words (email addresses) untouched.
	tagRx = regexp.MustCompile(`\B@(\S)`)

	// bracketRx matches a bracketed span followed by whitespace, with an
	// optional escape already in front. Markdown links are excluded
	// because their closing bracket is followed by "(".
	bracketRx = regexp.MustCompile(`\\?\[[^\]]*\][ \t]`)

	// ruleRx matches a horizontal rule: three or more of the same marker
	// character, optionally space-separated.
	ruleRx = regexp.MustCompile(`^(?:-(?:[ \t]*-){2,}|\*(?:[ \t]*\*){2,}|_(?:[ \t]*_){2,})[ \t]*$`)

	// atxTitleRx matches a level-1 Atx heading and captures its text.
	atxTitleRx = regexp.MustCompile(`^#[ \t]+(.+)$`)
)

// isFenceToggle reports whether the line flips fenced-code mode.
func isFenceToggle(line string) bool {
	return strings.HasPrefix(line, fenceMarker)
}

// isTabIndented reports whether the line belongs to a Zim verbatim run.
func isTabIndented(line string) bool {
	return strings.HasPrefix(line, "\t")
}

// isUnderline reports whether the line consists solely of ch, making it a
// Setext underline candidate for the preceding line.
func isUnderline(line string, ch byte) bool {
	if line == "" {
		return false
	}
	return strings.Count(line, string(ch)) == len(line)
}

// isRule reports whether the line is a horizontal rule variant.
func isRule(line string) bool {
	return ruleRx.MatchString(line)
}

// rewriteInline applies the single-line rewrites in the order the stray
// brackets rule requires: escaping runs first, while checkboxes are still
// glyphs, so converted task states are never escaped on a later run.
func rewriteInline(line string, preserveAt bool) string {
	line = escapeBrackets(line)
	line = convertCheckboxes(line)
	line = highlightRx.ReplaceAllString(line, "==$1==")
	if !preserveAt && strings.Contains(line, "@") {
		line = tagRx.ReplaceAllString(line, "#$1")
	}
	return line
}

// escapeBrackets escapes bracketed spans that do not belong to links, so
// Obsidian does not read them as unresolved references. Spans that are
// already escaped and single-character spans (task states) stay untouched.
func escapeBrackets(line string) string {
	if !strings.Contains(line, "[") {
		return line
	}
	return bracketRx.ReplaceAllStringFunc(line, func(m string) string {
		if strings.HasPrefix(m, `\`) {
			return m
		}
		content := m[1 : len(m)-2]
		if utf8.RuneCountInString(content) <= 1 {
			return m
		}
		return `\` + m
	})
}

// convertCheckboxes replaces Zim checkbox glyphs with Obsidian task items.
func convertCheckboxes(line string) string {
	if !strings.ContainsAny(line, "☐☑☒▷◁") {
		return line
	}
	return checkboxRx.ReplaceAllStringFunc(line, func(m string) string {
		glyph, _ := utf8.DecodeLastRuneInString(m)
		return "- [" + checkboxStates[glyph] + "]"
	})
}
