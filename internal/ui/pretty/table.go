package pretty

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // PAGE, NEW NAME, LINKS
	linksColumnWidth = 5
	minPageWidth     = 20
	minNameWidth     = 20
	tableSeparator   = "="
	defaultTermWidth = 100
)

// RenameRow represents a single planned rename in the overview table.
type RenameRow struct {
	Page    string
	NewName string
	Links   int
}

// RenameTable formats a run's planned renames as a styled table.
type RenameTable struct {
	styles    *Styles
	termWidth int
}

// NewRenameTable creates a new rename table formatter.
func NewRenameTable(styles *Styles, termWidth int) *RenameTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &RenameTable{
		styles:    styles,
		termWidth: termWidth,
	}
}

// Format formats the renames in a run as a styled table. Pages that keep
// their name are left out; a run without renames formats as the empty
// string.
func (t *RenameTable) Format(result *convert.Result) string {
	if result == nil {
		return ""
	}

	rows := collectRenames(result)
	if len(rows) == 0 {
		return ""
	}

	// Calculate column widths
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	// Write header
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	// Write rows
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	// Write footer separator and summary
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatTableSummary(rows))
	builder.WriteString("\n")

	return builder.String()
}

// collectRenames collects one row per renamed page, in run order.
func collectRenames(result *convert.Result) []RenameRow {
	var rows []RenameRow

	for _, page := range result.Pages {
		if page.Error != nil || !page.Renamed {
			continue
		}
		rows = append(rows, RenameRow{
			Page:    page.Path,
			NewName: page.NewPath,
			Links:   page.LinksRewritten,
		})
	}

	return rows
}

// calculateColumnWidths determines column widths based on content,
// constrained to the terminal width.
func (t *RenameTable) calculateColumnWidths(rows []RenameRow) renameColumnWidths {
	widths := renameColumnWidths{
		page: minPageWidth,
		name: minNameWidth,
	}

	for _, row := range rows {
		if len(row.Page) > widths.page {
			widths.page = len(row.Page)
		}
		if len(row.NewName) > widths.name {
			widths.name = len(row.NewName)
		}
	}

	// Constrain to terminal width
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		// Reduce the new-name column first
		excess := totalWidth - t.termWidth
		widths.name = max(minNameWidth, widths.name-excess)

		// If still too wide, reduce the page column
		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.page = max(minPageWidth, widths.page-excess)
		}
	}

	return widths
}

type renameColumnWidths struct {
	page int
	name int
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *RenameTable) calculateTotalWidth(widths renameColumnWidths) int {
	return widths.page + widths.name + linksColumnWidth +
		(tablePadding * tableColumnCount)
}

// formatHeader formats the table header row.
func (t *RenameTable) formatHeader(widths renameColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %s",
		widths.page, "PAGE",
		widths.name, "NEW NAME",
		"LINKS",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *RenameTable) formatSeparator(widths renameColumnWidths) string {
	sep := strings.Repeat(tableSeparator, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row.
func (t *RenameTable) formatRow(row RenameRow, widths renameColumnWidths) string {
	page := truncatePagePath(row.Page, widths.page)
	name := truncatePagePath(row.NewName, widths.name)

	return fmt.Sprintf(" %-*s  %-*s  %*d",
		widths.page, page,
		widths.name, name,
		linksColumnWidth, row.Links,
	)
}

// formatTableSummary formats a summary line for the table.
func (t *RenameTable) formatTableSummary(rows []RenameRow) string {
	var links int
	for _, row := range rows {
		links += row.Links
	}

	parts := []string{countNoun(len(rows), wordPage, wordPages) + " renamed"}
	if links > 0 {
		parts = append(parts, countNoun(links, wordLink, wordLinks)+" rewritten")
	}

	return " " + strings.Join(parts, " | ")
}

// truncatePagePath truncates a page path, preserving the end (filename)
// rather than the beginning.
func truncatePagePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

// TerminalWidth reports the width of the terminal behind writer, falling
// back to a default for non-terminal writers.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
