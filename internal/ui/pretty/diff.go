package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/zim2obsidian/pkg/diff"
)

// DiffRenderer writes unified diffs in GitHub style.
type DiffRenderer struct {
	styles *Styles
	out    io.Writer
}

// NewDiffRenderer creates a new diff renderer writing to out.
func NewDiffRenderer(out io.Writer, styles *Styles) *DiffRenderer {
	return &DiffRenderer{styles: styles, out: out}
}

// Render outputs a single page's diff with formatting. Renamed pages show
// up through the differing a/ and b/ paths in the git header.
func (r *DiffRenderer) Render(d *diff.Diff) {
	if !d.HasChanges() {
		return
	}

	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(d.GitHeader()))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+strings.TrimPrefix(d.FromPath, "/")))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+strings.TrimPrefix(d.ToPath, "/")))

	for _, hunk := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		fmt.Fprintln(r.out, r.styles.DiffHunk.Render(header))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.Add:
				fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+"+line.Content))
			case diff.Remove:
				fmt.Fprintln(r.out, r.styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(r.out, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}

	fmt.Fprintln(r.out) // Blank line between pages
}

// RenderRename outputs a rename notice for a page whose content is already
// converted. Such pages produce no hunks, so a plain diff would hide them.
func (r *DiffRenderer) RenderRename(fromPath, toPath string) {
	header := fmt.Sprintf("diff --git a/%s b/%s", fromPath, toPath)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(r.out, r.styles.Rename.Render("rename from "+fromPath))
	fmt.Fprintln(r.out, r.styles.Rename.Render("rename to "+toPath))
	fmt.Fprintln(r.out)
}

// RenderError outputs a single page failure.
func (r *DiffRenderer) RenderError(path string, err error) {
	fmt.Fprintf(r.out, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// RenderSummary writes a change-count line at the end.
func (r *DiffRenderer) RenderSummary(pages, additions, deletions int) {
	parts := []string{countNoun(pages, wordPage, wordPages) + " changed"}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(countNoun(additions, "insertion", "insertions")+"(+)"))
	}

	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(countNoun(deletions, "deletion", "deletions")+"(-)"))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
