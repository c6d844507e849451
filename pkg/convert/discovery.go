package convert

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
)

// Tree is the set of pages discovered under a notebook root.
type Tree struct {
	// Root is the absolute path of the notebook directory.
	Root string

	// Pages holds the tree-relative, slash-separated page paths in
	// deterministic (sorted) order.
	Pages []string
}

// Discover finds the pages under opts.Root. Hidden files and directories
// are skipped. When Root names a single file, its directory becomes the
// tree root and that file its only page.
func Discover(ctx context.Context, opts Options) (*Tree, error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", fsutil.ErrNotFound, root, err)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	extensions := opts.effectiveExtensions()

	if !info.IsDir() {
		// A single page stands in for its directory.
		dir := filepath.Dir(root)
		tree := &Tree{Root: dir}
		if rel, ok := relPage(root, dir, extensions, opts.ExcludeGlobs); ok {
			tree.Pages = []string{rel}
		}
		return tree, nil
	}

	files, err := walkTree(ctx, root, root, extensions, opts)
	if err != nil {
		return nil, err
	}

	// Symlink traversal can reach the same file twice.
	seen := make(map[string]struct{}, len(files))
	pages := make([]string, 0, len(files))
	for _, rel := range files {
		if _, ok := seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		pages = append(pages, rel)
	}
	sort.Strings(pages)

	return &Tree{Root: root, Pages: pages}, nil
}

// resolveRoot resolves the notebook root, defaulting to os.Getwd().
func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

// walkTree recursively walks dir and returns matching pages relative to base.
func walkTree(
	ctx context.Context,
	dir string,
	base string,
	extensions []string,
	opts Options,
) ([]string, error) {
	var pages []string

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Tolerate unreadable corners of the tree.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			// Hidden directories (except the root itself) hold Zim
			// bookkeeping, version control, and the like.
			if path != dir && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if rel, relErr := filepath.Rel(base, path); relErr == nil {
				if matchesExclude(filepath.ToSlash(rel), opts.ExcludeGlobs) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			target, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if target.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the symlink target, not the symlink itself, so
				// WalkDir's Lstat-based root handling cannot recurse
				// into the link forever.
				sub, subErr := walkTree(ctx, realPath, base, extensions, opts)
				if subErr != nil {
					return subErr
				}
				pages = append(pages, sub...)
				return nil
			}
			// File symlinks are checked as regular pages.
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if rel, ok := relPage(path, base, extensions, opts.ExcludeGlobs); ok {
			pages = append(pages, rel)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return pages, nil
}

// relPage reports whether path is a page of the tree at base, and returns
// its tree-relative slash-separated form.
func relPage(path, base string, extensions, excludes []string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	if !hasPageExtension(path, extensions) {
		return "", false
	}
	if matchesExclude(rel, excludes) {
		return "", false
	}
	return rel, true
}

// hasPageExtension checks if the file has a matching extension.
func hasPageExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesExclude checks if the path matches any exclude pattern.
func matchesExclude(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob pattern. Beyond
// filepath.Match syntax it understands ** for recursive matching, and a
// bare-name pattern matches the file's basename anywhere in the tree.
func matchGlob(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	matched, err := filepath.Match(pattern, filepath.Base(path))
	if err != nil {
		return false
	}
	return matched
}

// matchDoubleStar handles ** glob patterns: "**/name" matches name as any
// path component, "prefix/**" matches the whole subtree, and a pattern with
// ** in the middle matches on its prefix and suffix.
func matchDoubleStar(path, pattern string) bool {
	parts := strings.SplitN(pattern, "**", 2)

	if parts[0] == "" {
		suffix := strings.TrimPrefix(parts[1], "/")
		if suffix == "" {
			return true
		}
		if strings.HasSuffix(path, suffix) || strings.Contains(path, suffix) {
			return true
		}
		for _, component := range strings.Split(path, "/") {
			if matched, err := filepath.Match(suffix, component); err == nil && matched {
				return true
			}
		}
		return false
	}

	if parts[1] == "" || parts[1] == "/" {
		prefix := strings.TrimSuffix(parts[0], "/")
		if prefix == "" {
			return true
		}
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && !strings.HasPrefix(path, prefix) {
		return false
	}
	if suffix != "" && !strings.HasSuffix(path, suffix) {
		matched, err := filepath.Match(suffix, filepath.Base(path))
		if err != nil || !matched {
			return false
		}
	}
	return true
}
