package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/diff"
	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
)

// longExt is the page extension some Zim exporters emit.
const longExt = ".markdown"

// FixExtensions renames *.markdown pages to *.md and rewrites ".markdown)"
// link suffixes inside them. Exports that used the long extension need this
// before conversion. opts.Extensions is ignored.
func FixExtensions(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.logger()

	opts.Extensions = []string{longExt}
	tree, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("pages discovered",
		logging.FieldRoot, tree.Root,
		logging.FieldPagesScanned, len(tree.Pages))

	result := &Result{Pages: make([]PageOutcome, 0, len(tree.Pages))}
	result.Stats.PagesScanned = len(tree.Pages)

	for _, rel := range tree.Pages {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}
		result.accumulate(fixExtension(ctx, tree.Root, rel, opts, logger))
	}

	return result, nil
}

// fixExtension rewrites one long-extension page under its short name.
func fixExtension(ctx context.Context, root, rel string, opts Options, logger *log.Logger) PageOutcome {
	newRel := strings.TrimSuffix(rel, path.Ext(rel)) + ".md"
	outcome := PageOutcome{Path: rel, NewPath: newRel, Renamed: true}

	abs := filepath.Join(root, filepath.FromSlash(rel))
	raw, info, err := fsutil.ReadFile(ctx, abs)
	if err != nil {
		outcome.Error = fmt.Errorf("read page: %w", err)
		logger.Error("cannot read page", logging.FieldPage, rel, logging.FieldError, err)
		return outcome
	}

	outcome.LinksRewritten = bytes.Count(raw, []byte(longExt+")"))
	fixed := bytes.ReplaceAll(raw, []byte(longExt+")"), []byte(".md)"))

	logger.Info("rename planned", logging.FieldFrom, rel, logging.FieldTo, newRel)

	if opts.DryRun {
		outcome.Diff = diff.Generate(rel, newRel, raw, fixed)
		return outcome
	}

	if _, err := fsutil.CreateBackup(ctx, abs, opts.Backup); err != nil {
		outcome.Error = fmt.Errorf("back up page: %w", err)
		return outcome
	}

	// The long-extension original goes away only after the short-extension
	// page is safely on disk.
	newAbs := filepath.Join(root, filepath.FromSlash(newRel))
	if err := fsutil.WriteAtomic(ctx, newAbs, fixed, info.Mode); err != nil {
		outcome.Error = fmt.Errorf("write page: %w", err)
		logger.Error("cannot write page", logging.FieldPage, rel, logging.FieldError, err)
		return outcome
	}
	if err := os.Remove(abs); err != nil {
		outcome.Error = fmt.Errorf("remove old page: %w", err)
		return outcome
	}

	outcome.Written = true
	return outcome
}
