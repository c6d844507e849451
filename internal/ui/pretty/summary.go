package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

const (
	summaryDividerWidth = 40
	wordPage            = "page"
	wordPages           = "pages"
	wordLink            = "link"
	wordLinks           = "links"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 pages converted (2 renamed), 5 links rewritten, 1 dangling link".
func (s *Styles) FormatSummaryOneLine(stats convert.Stats) string {
	if stats.PagesConverted == 0 && stats.PagesFailed == 0 {
		msg := s.Success.Render("Nothing to convert") +
			s.Dim.Render(fmt.Sprintf(" (%d pages scanned)", stats.PagesScanned))
		// Dangling links and untitled pages still deserve a mention on an
		// otherwise clean run
		if stats.DanglingLinks > 0 {
			msg += ", " + s.Warning.Render(countNoun(stats.DanglingLinks, "dangling "+wordLink, "dangling "+wordLinks))
		}
		if stats.Untitled > 0 {
			msg += ", " + s.Dim.Render(countNoun(stats.Untitled, "untitled "+wordPage, "untitled "+wordPages))
		}
		return msg + "\n"
	}

	var parts []string

	// Main count with rename breakdown
	converted := countNoun(stats.PagesConverted, wordPage, wordPages) + " converted"
	if stats.PagesRenamed > 0 {
		converted += fmt.Sprintf(" (%s)", s.Success.Render(fmt.Sprintf("%d renamed", stats.PagesRenamed)))
	}
	parts = append(parts, converted)

	if stats.LinksRewritten > 0 {
		parts = append(parts, countNoun(stats.LinksRewritten, wordLink, wordLinks)+" rewritten")
	}

	if stats.DanglingLinks > 0 {
		parts = append(parts, s.Warning.Render(countNoun(stats.DanglingLinks, "dangling "+wordLink, "dangling "+wordLinks)))
	}

	if stats.Untitled > 0 {
		parts = append(parts, s.Dim.Render(countNoun(stats.Untitled, "untitled "+wordPage, "untitled "+wordPages)))
	}

	if stats.PagesFailed > 0 {
		parts = append(parts, s.Failure.Render(countNoun(stats.PagesFailed, wordPage, wordPages)+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats convert.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Pages
	builder.WriteString("  Pages scanned:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.PagesScanned)) + "\n")

	builder.WriteString("  Pages converted:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.PagesConverted)) + "\n")

	if stats.PagesRenamed > 0 {
		builder.WriteString("  Pages renamed:    " +
			s.Success.Render(strconv.Itoa(stats.PagesRenamed)) + "\n")
	}

	if stats.PagesFailed > 0 {
		builder.WriteString("  Pages failed:     " +
			s.Failure.Render(strconv.Itoa(stats.PagesFailed)) + "\n")
	}

	builder.WriteString("\n")

	// Links
	builder.WriteString("  Links rewritten:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.LinksRewritten)) + "\n")

	if stats.DanglingLinks > 0 {
		builder.WriteString("  Dangling links:   " +
			s.Warning.Render(strconv.Itoa(stats.DanglingLinks)) + "\n")
	}

	if stats.Untitled > 0 {
		builder.WriteString("  Untitled pages:   " +
			s.Dim.Render(strconv.Itoa(stats.Untitled)) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.PagesFailed > 0:
		builder.WriteString(s.Failure.Render("Conversion failed on some pages"))
	case stats.DanglingLinks > 0:
		builder.WriteString(s.Warning.Render("Converted with dangling links"))
	default:
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// countNoun formats a count with the correct singular or plural noun.
func countNoun(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
