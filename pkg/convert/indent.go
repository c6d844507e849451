package convert

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/diff"
	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
)

// Zim's Markdown exporter discards leading tabs and spaces. Substituting
// entities before the export and restoring them afterwards carries the
// indentation through.
const (
	zimSourceExt   = ".txt"
	zimContentType = "Content-Type: text/x-zim-wiki"

	tabSubst   = "&emsp;"
	spaceSubst = "&nbsp;"
)

// ProtectIndent rewrites Zim notebook source files in place, replacing each
// leading tab with "&emsp;" and each leading space with "&nbsp;". Only .txt
// files whose first line carries the Zim content-type header are touched;
// opts.Extensions is ignored. Run it on a copy of the notebook before the
// Markdown export.
func ProtectIndent(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.logger()

	opts.Extensions = []string{zimSourceExt}
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
		result.accumulate(protectPage(ctx, tree.Root, rel, opts, logger))
	}

	return result, nil
}

// RestoreIndent rewrites exported pages in place, replacing every "&emsp;"
// with a tab and every "&nbsp;" with a space. The replacement is global, not
// limited to line starts, matching the substitution tool it undoes. Run it on
// the export tree before conversion.
func RestoreIndent(ctx context.Context, opts Options) (*Result, error) {
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

	for _, rel := range tree.Pages {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}
		result.accumulate(restorePage(ctx, tree.Root, rel, opts, logger))
	}

	return result, nil
}

// protectPage substitutes the leading indentation of every line in one Zim
// source file. Files without the content-type header pass untouched.
func protectPage(ctx context.Context, root, rel string, opts Options, logger *log.Logger) PageOutcome {
	outcome := PageOutcome{Path: rel, NewPath: rel}

	abs := filepath.Join(root, filepath.FromSlash(rel))
	raw, info, err := fsutil.ReadFile(ctx, abs)
	if err != nil {
		outcome.Error = fmt.Errorf("read page: %w", err)
		logger.Error("cannot read page", logging.FieldPage, rel, logging.FieldError, err)
		return outcome
	}

	lines := splitLines(raw)
	if len(lines) == 0 || !strings.HasPrefix(lines[0], zimContentType) {
		return outcome
	}
	for i, line := range lines {
		lines[i] = substLeading(line)
	}
	fixed := assemblePage(nil, lines)
	if bytes.Equal(fixed, raw) {
		return outcome
	}

	logger.Info("indent protected", logging.FieldPage, rel)

	if opts.DryRun {
		outcome.Diff = diff.Generate(rel, rel, raw, fixed)
		return outcome
	}
	if _, err := fsutil.CreateBackup(ctx, abs, opts.Backup); err != nil {
		outcome.Error = fmt.Errorf("back up page: %w", err)
		return outcome
	}
	if err := fsutil.WriteAtomic(ctx, abs, fixed, info.Mode); err != nil {
		outcome.Error = fmt.Errorf("write page: %w", err)
		logger.Error("cannot write page", logging.FieldPage, rel, logging.FieldError, err)
		return outcome
	}

	outcome.Written = true
	return outcome
}

// restorePage swaps the substitution entities back in one exported page.
func restorePage(ctx context.Context, root, rel string, opts Options, logger *log.Logger) PageOutcome {
	outcome := PageOutcome{Path: rel, NewPath: rel}

	abs := filepath.Join(root, filepath.FromSlash(rel))
	raw, info, err := fsutil.ReadFile(ctx, abs)
	if err != nil {
		outcome.Error = fmt.Errorf("read page: %w", err)
		logger.Error("cannot read page", logging.FieldPage, rel, logging.FieldError, err)
		return outcome
	}

	fixed := bytes.ReplaceAll(raw, []byte(tabSubst), []byte("\t"))
	fixed = bytes.ReplaceAll(fixed, []byte(spaceSubst), []byte(" "))
	if bytes.Equal(fixed, raw) {
		return outcome
	}

	logger.Info("indent restored", logging.FieldPage, rel)

	if opts.DryRun {
		outcome.Diff = diff.Generate(rel, rel, raw, fixed)
		return outcome
	}
	if _, err := fsutil.CreateBackup(ctx, abs, opts.Backup); err != nil {
		outcome.Error = fmt.Errorf("back up page: %w", err)
		return outcome
	}
	if err := fsutil.WriteAtomic(ctx, abs, fixed, info.Mode); err != nil {
		outcome.Error = fmt.Errorf("write page: %w", err)
		logger.Error("cannot write page", logging.FieldPage, rel, logging.FieldError, err)
		return outcome
	}

	outcome.Written = true
	return outcome
}

// substLeading replaces the line's leading tabs and spaces with their
// exporter-safe entities. The first other character ends the leading run.
func substLeading(line string) string {
	i := 0
	for i < len(line) && (line[i] == '\t' || line[i] == ' ') {
		i++
	}
	if i == 0 {
		return line
	}
	var b strings.Builder
	b.Grow(i*len(spaceSubst) + len(line) - i)
	for _, c := range line[:i] {
		if c == '\t' {
			b.WriteString(tabSubst)
		} else {
			b.WriteString(spaceSubst)
		}
	}
	b.WriteString(line[i:])
	return b.String()
}
