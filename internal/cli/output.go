package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/ui/pretty"
	"github.com/yaklabco/zim2obsidian/pkg/config"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

// printResult writes the end-of-run report. Dry runs always render their
// preview; for real runs the summary is interactive output and follows the
// color gate, so pipes stay clean while the run log covers the detail.
func printResult(cmd *cobra.Command, cfg *config.Config, result *convert.Result, oneLine bool) {
	out := cmd.OutOrStdout()
	colorEnabled := pretty.IsColorEnabled(effectiveColorMode(cmd, cfg), out)
	styles := pretty.NewStyles(colorEnabled)

	if cfg.DryRun {
		renderDryRun(out, result, styles)
		return
	}

	if !colorEnabled {
		return
	}

	if oneLine {
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
		return
	}
	fmt.Fprint(out, styles.FormatSummary(result.Stats))
}

// renderDryRun writes the preview for a dry run: a unified diff per changed
// page, a rename notice for pages whose content is already converted, and a
// rename overview table.
func renderDryRun(out io.Writer, result *convert.Result, styles *pretty.Styles) {
	renderer := pretty.NewDiffRenderer(out, styles)

	var pagesChanged, additions, deletions int
	for _, page := range result.Pages {
		switch {
		case page.Error != nil:
			renderer.RenderError(page.Path, page.Error)
		case page.Diff != nil:
			pagesChanged++
			additions += page.Diff.Additions
			deletions += page.Diff.Deletions
			renderer.Render(page.Diff)
		case page.Renamed:
			pagesChanged++
			renderer.RenderRename(page.Path, page.NewPath)
		}
	}

	if pagesChanged > 0 {
		renderer.RenderSummary(pagesChanged, additions, deletions)
	} else {
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
	}

	table := pretty.NewRenameTable(styles, pretty.TerminalWidth(out))
	if rendered := table.Format(result); rendered != "" {
		fmt.Fprintln(out)
		fmt.Fprint(out, rendered)
	}
}
