// Package diff renders unified diffs of page conversions for dry-run
// previews. A diff carries both the original and the planned path, so
// renamed pages show up as git-style rename headers.
package diff

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between a page's original and converted content.
type Diff struct {
	// FromPath is the page's original path, used on the "---" side.
	FromPath string

	// ToPath is the page's planned path, used on the "+++" side. Equal to
	// FromPath when the page keeps its name.
	ToPath string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in
	// the original.
	OriginalStart int

	// OriginalCount is the number of original lines in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in
	// the converted content.
	ModifiedStart int

	// ModifiedCount is the number of converted lines in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []Line
}

// Line is a single line in a diff hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line content without the diff prefix.
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// Context is an unchanged line.
	Context LineKind = iota

	// Add is a line present only in the converted content.
	Add

	// Remove is a line present only in the original.
	Remove
)

// contextLines is the number of context lines shown around changes.
const contextLines = 3

// Generate creates a unified diff between a page's original and converted
// content. It returns nil when the content is unchanged, regardless of
// whether the page is being renamed.
func Generate(fromPath, toPath string, original, converted []byte) *Diff {
	if len(original) == 0 && len(converted) == 0 {
		return nil
	}

	origLines := splitLines(original)
	convLines := splitLines(converted)
	if linesEqual(origLines, convLines) {
		return nil
	}

	hunks := computeHunks(origLines, convLines)
	if len(hunks) == 0 {
		return nil
	}

	var additions, deletions int
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Add:
				additions++
			case Remove:
				deletions++
			}
		}
	}

	return &Diff{
		FromPath:  fromPath,
		ToPath:    toPath,
		Hunks:     hunks,
		Additions: additions,
		Deletions: deletions,
	}
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	from := strings.TrimPrefix(d.FromPath, "/")
	to := strings.TrimPrefix(d.ToPath, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", from, to)
}

// String returns the diff in unified format, without the git header.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", strings.TrimPrefix(d.FromPath, "/"))
	fmt.Fprintf(&builder, "+++ b/%s\n", strings.TrimPrefix(d.ToPath, "/"))

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case Context:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case Add:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case Remove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, dropping a trailing newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// computeHunks computes diff hunks with an LCS-based algorithm.
func computeHunks(orig, conv []string) []Hunk {
	lcs := longestCommonSubsequence(orig, conv)

	ops := buildOps(orig, conv, lcs)
	if len(ops) == 0 {
		return nil
	}

	return groupIntoHunks(ops)
}

// op is a single diff operation.
type op struct {
	kind    LineKind
	content string
}

// buildOps walks both line slices against the LCS and emits context, remove,
// and add operations in order.
func buildOps(orig, conv, lcs []string) []op {
	var ops []op
	origIdx, convIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || convIdx < len(conv) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && convIdx < len(conv) &&
			orig[origIdx] == lcs[lcsIdx] && conv[convIdx] == lcs[lcsIdx] {
			ops = append(ops, op{kind: Context, content: orig[origIdx]})
			origIdx++
			convIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Remove, content: orig[origIdx]})
			origIdx++
		}

		for convIdx < len(conv) && (lcsIdx >= len(lcs) || conv[convIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Add, content: conv[convIdx]})
			convIdx++
		}
	}

	return ops
}

// groupIntoHunks groups operations into hunks, merging changes whose context
// windows touch.
func groupIntoHunks(ops []op) []Hunk {
	if len(ops) == 0 {
		return nil
	}

	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, o := range ops {
		isChange := o.kind != Context
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	if len(ranges) == 0 {
		return nil
	}

	var hunks []Hunk

	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			gap := ranges[mergeEnd].start - ranges[mergeEnd-1].end
			if gap > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk builds a single hunk from a range of operations, expanded by the
// surrounding context lines.
func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for opIdx := range start {
		if ops[opIdx].kind != Add {
			hunk.OriginalStart++
		}
		if ops[opIdx].kind != Remove {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		o := ops[i]
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Content: o.content})

		switch o.kind {
		case Context:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case Remove:
			hunk.OriginalCount++
		case Add:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two line slices.
func longestCommonSubsequence(orig, conv []string) []string {
	origLen, convLen := len(orig), len(conv)
	if origLen == 0 || convLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, convLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= convLen; col++ {
			if orig[row-1] == conv[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][convLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := origLen, convLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == conv[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
