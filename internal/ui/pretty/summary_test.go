package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/zim2obsidian/internal/ui/pretty"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   12,
		PagesConverted: 5,
		PagesRenamed:   3,
		LinksRewritten: 8,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Pages scanned:")
	assert.Contains(t, result, "12")
	assert.Contains(t, result, "Pages converted:")
	assert.Contains(t, result, "5")
	assert.Contains(t, result, "Pages renamed:")
	assert.Contains(t, result, "3")
	assert.Contains(t, result, "Links rewritten:")
	assert.Contains(t, result, "8")
}

func TestFormatSummary_CleanRun(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   5,
		PagesConverted: 5,
		PagesRenamed:   5,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Conversion complete")
	assert.NotContains(t, result, "Pages failed:")
	assert.NotContains(t, result, "Dangling links:")
}

func TestFormatSummary_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   10,
		PagesConverted: 8,
		PagesFailed:    2,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Pages failed:")
	assert.Contains(t, result, "Conversion failed on some pages")
}

func TestFormatSummary_DanglingLinks(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   10,
		PagesConverted: 10,
		DanglingLinks:  4,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Dangling links:")
	assert.Contains(t, result, "4")
	assert.Contains(t, result, "Converted with dangling links")
}

func TestFormatSummary_UntitledPages(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   10,
		PagesConverted: 7,
		Untitled:       3,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Untitled pages:")
	assert.Contains(t, result, "3")
	// Untitled pages alone do not fail a run
	assert.Contains(t, result, "Conversion complete")
}

func TestFormatSummaryOneLine_NothingToConvert(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned: 5,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "Nothing to convert")
	assert.Contains(t, result, "(5 pages scanned)")
}

func TestFormatSummaryOneLine_WithChanges(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   10,
		PagesConverted: 3,
		PagesRenamed:   2,
		LinksRewritten: 5,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "3 pages converted")
	assert.Contains(t, result, "2 renamed")
	assert.Contains(t, result, "5 links rewritten")
}

func TestFormatSummaryOneLine_SinglePage(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   1,
		PagesConverted: 1,
		LinksRewritten: 1,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 page converted")
	assert.Contains(t, result, "1 link rewritten")
	assert.NotContains(t, result, "renamed")
}

func TestFormatSummaryOneLine_DanglingAndUntitled(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   10,
		PagesConverted: 4,
		DanglingLinks:  2,
		Untitled:       1,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "2 dangling links")
	assert.Contains(t, result, "1 untitled page")
}

func TestFormatSummaryOneLine_Failures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := convert.Stats{
		PagesScanned:   10,
		PagesConverted: 9,
		PagesFailed:    1,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 page failed")
}

func TestFormatSummaryOneLine_CleanRunWithWarnings(t *testing.T) {
	styles := pretty.NewStyles(false)

	// A re-run over an already converted tree still reports dangling links
	stats := convert.Stats{
		PagesScanned:  6,
		DanglingLinks: 1,
		Untitled:      2,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "Nothing to convert")
	assert.Contains(t, result, "1 dangling link")
	assert.Contains(t, result, "2 untitled pages")
}
