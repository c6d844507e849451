package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/charmbracelet/log"

	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/diff"
	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
	"github.com/yaklabco/zim2obsidian/pkg/langdetect"
	"github.com/yaklabco/zim2obsidian/pkg/rename"
	"github.com/yaklabco/zim2obsidian/pkg/rewrite"
	"github.com/yaklabco/zim2obsidian/pkg/zim"
)

// page carries one page's scan-pass state into the rewrite pass.
type page struct {
	rel   string // tree-relative slash-separated path
	raw   []byte // file content as read
	info  *fsutil.FileInfo
	front []byte   // verbatim front matter block, may be empty
	lines []string // body lines, line endings stripped
	title string
	start int   // title heading position in lines
	span  int   // title heading line count, 0 when untitled
	err   error // scan failure; the page sits out the rewrite pass
}

// Run converts the notebook tree at opts.Root in two passes and reports
// per-page outcomes. Page-level problems are recorded on the outcomes and
// never abort the run; only discovery failures and context cancellation do.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.logger()

	tree, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("pages discovered",
		logging.FieldRoot, tree.Root,
		logging.FieldPagesScanned, len(tree.Pages))

	result := &Result{Pages: make([]PageOutcome, 0, len(tree.Pages))}
	result.Stats.PagesScanned = len(tree.Pages)

	if len(tree.Pages) == 0 {
		return result, nil
	}

	pages, err := scanPages(ctx, tree, logger)
	if err != nil {
		return nil, err
	}
	for _, pg := range pages {
		if pg.err == nil && pg.title == "" {
			result.Stats.Untitled++
		}
	}

	// The rename plan is frozen here, before any page is rewritten, so
	// links resolve the same way regardless of traversal order.
	plan := planRenames(pages, tree.Root, opts, logger)
	rewriter := rewrite.New(plan, opts.effectiveExtensions())

	for _, pg := range pages {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}
		result.accumulate(convertPage(ctx, pg, tree.Root, plan, rewriter, opts, logger))
	}

	return result, nil
}

// scanPages reads every page once. Read failures are recorded on the page
// rather than aborting the run.
func scanPages(ctx context.Context, tree *Tree, logger *log.Logger) ([]*page, error) {
	pages := make([]*page, 0, len(tree.Pages))
	for _, rel := range tree.Pages {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("scan cancelled: %w", ctx.Err())
		default:
		}

		pg := &page{rel: rel}
		pages = append(pages, pg)

		raw, info, err := fsutil.ReadFile(ctx, filepath.Join(tree.Root, filepath.FromSlash(rel)))
		if err != nil {
			pg.err = fmt.Errorf("read page: %w", err)
			logger.Error("cannot read page", logging.FieldPage, rel, logging.FieldError, err)
			continue
		}

		pg.raw = raw
		pg.info = info
		pg.front, pg.lines = splitPage(raw)
		pg.title, pg.start, pg.span = zim.ExtractTitle(pg.lines)
		if pg.title == "" {
			logger.Warn("page has no title", logging.FieldPage, rel)
		}
	}
	return pages, nil
}

// planRenames freezes the rename plan over every scanned page. Each
// directory is seeded with all names currently on disk, pages or not, so a
// planned name never collides with a file the run does not own. Unreadable
// pages are planned under their own name, keeping links to them intact.
func planRenames(pages []*page, root string, opts Options, logger *log.Logger) rename.Map {
	planner := rename.NewPlanner(opts.KeepNames)

	if !opts.KeepNames {
		seeded := make(map[string]struct{})
		for _, pg := range pages {
			dir, _ := path.Split(pg.rel)
			if _, ok := seeded[dir]; ok {
				continue
			}
			seeded[dir] = struct{}{}
			planner.SeedDir(dir, dirNames(root, dir))
		}
	}

	for _, pg := range pages {
		entry := planner.Plan(pg.rel, pg.title)
		if entry.Renamed {
			logger.Info("rename planned",
				logging.FieldFrom, pg.rel,
				logging.FieldTo, entry.NewPath)
		}
	}
	return planner.Map()
}

// dirNames lists the entry names of the tree directory dir, empty on error.
func dirNames(root, dir string) []string {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// convertPage runs the rewrite pass over a single scanned page.
func convertPage(
	ctx context.Context,
	pg *page,
	root string,
	plan rename.Map,
	rewriter *rewrite.Rewriter,
	opts Options,
	logger *log.Logger,
) PageOutcome {
	outcome := PageOutcome{Path: pg.rel, NewPath: pg.rel, Title: pg.title}
	if pg.err != nil {
		outcome.Error = pg.err
		return outcome
	}

	newRel := pg.rel
	if entry, ok := plan[pageKey(pg.rel)]; ok && entry.Renamed {
		newRel = entry.NewPath
	}
	outcome.NewPath = newRel
	renamed := newRel != pg.rel

	lines := pg.lines
	if !opts.KeepTitle && pg.span > 0 {
		trimmed := make([]string, 0, len(lines)-pg.span)
		trimmed = append(trimmed, lines[:pg.start]...)
		trimmed = append(trimmed, lines[pg.start+pg.span:]...)
		lines = trimmed
	}

	zopts := zim.Options{
		Backticks:  opts.Backticks,
		PreserveAt: opts.PreserveAt,
		MDLinks:    opts.MDLinks,
	}
	if opts.DetectLanguage {
		zopts.DetectLanguage = langdetect.Detect
	}
	zopts.Links = func(l zim.Link) zim.Link {
		res, ok := rewriter.Resolve(pg.rel, l.Target)
		if !ok {
			outcome.Dangling = append(outcome.Dangling, l.Target)
			logger.Warn("link target is not a page of this tree",
				logging.FieldPage, pg.rel,
				logging.FieldTarget, l.Target)
			return l
		}
		if res.Target != l.Target {
			outcome.LinksRewritten++
		}
		l.Target = res.Target
		if l.Display == "" && res.Title != "" {
			l.Display = res.Title
		}
		return l
	}

	converted := assemblePage(pg.front, zim.Transform(lines, zopts))

	changed := !bytes.Equal(converted, pg.raw)
	if !changed && !renamed {
		return outcome
	}

	outcome.Renamed = renamed

	if opts.DryRun {
		outcome.Diff = diff.Generate(pg.rel, newRel, pg.raw, converted)
		return outcome
	}

	if err := writePage(ctx, pg, root, newRel, converted, opts); err != nil {
		outcome.Error = err
		logger.Error("cannot write page", logging.FieldPage, pg.rel, logging.FieldError, err)
		return outcome
	}
	outcome.Written = true
	logger.Debug("page written",
		logging.FieldPage, newRel,
		logging.FieldLinksRewritten, outcome.LinksRewritten)
	return outcome
}

// writePage commits a converted page to disk. A page that changed on disk
// since the scan pass is left alone and fails with ErrPageModified.
func writePage(ctx context.Context, pg *page, root, newRel string, converted []byte, opts Options) error {
	modified, err := fsutil.CheckModified(ctx, pg.info)
	if err != nil {
		return fmt.Errorf("check page: %w", err)
	}
	if modified {
		return ErrPageModified
	}

	oldAbs := filepath.Join(root, filepath.FromSlash(pg.rel))
	if _, err := fsutil.CreateBackup(ctx, oldAbs, opts.Backup); err != nil {
		return fmt.Errorf("back up page: %w", err)
	}

	if newRel == pg.rel {
		if err := fsutil.WriteAtomic(ctx, oldAbs, converted, pg.info.Mode); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		return nil
	}

	newAbs := filepath.Join(root, filepath.FromSlash(newRel))
	if strings.EqualFold(newRel, pg.rel) {
		// Case-only rename. On case-insensitive filesystems the new path
		// opens the old file, so write in place and let the rename fix
		// the spelling.
		if err := fsutil.WriteAtomic(ctx, oldAbs, converted, pg.info.Mode); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		if err := os.Rename(oldAbs, newAbs); err != nil {
			return fmt.Errorf("rename page: %w", err)
		}
		return nil
	}

	// The old path goes away only after the new page is safely on disk.
	if err := fsutil.WriteAtomic(ctx, newAbs, converted, pg.info.Mode); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	if err := os.Remove(oldAbs); err != nil {
		return fmt.Errorf("remove old page: %w", err)
	}
	return nil
}

// pageKey is the rename map key for a page path.
func pageKey(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// splitPage separates a page's front matter block from its body lines. The
// front matter bytes pass through conversion verbatim; malformed front
// matter is treated as page body.
func splitPage(raw []byte) ([]byte, []string) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return nil, splitLines(raw)
	}
	return raw[:len(raw)-len(body)], splitLines(body)
}

// splitLines breaks a page body into lines. CRLF endings are tolerated on
// input; pages are always written back with Unix endings.
func splitLines(body []byte) []string {
	if len(body) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// assemblePage reattaches the front matter block to the converted body. A
// nonempty body ends with exactly one newline.
func assemblePage(front []byte, lines []string) []byte {
	body := ""
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}

	var buf bytes.Buffer
	buf.Grow(len(front) + len(body))
	buf.Write(front)
	buf.WriteString(body)
	return buf.Bytes()
}
