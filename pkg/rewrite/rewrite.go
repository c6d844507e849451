// Package rewrite resolves page links against a completed rename map.
//
// It runs in the second pass, after every page's new name is known, so links
// may point forward to pages the traversal has not reached yet.
package rewrite

import (
	"path"
	"strings"

	"github.com/yaklabco/zim2obsidian/pkg/rename"
)

// Result is a resolved link target.
type Result struct {
	// Target is the rewritten link target, shaped like the source target:
	// same directory part, same extension style, new basename.
	Target string

	// Title is the resolved page's title, for defaulting display text.
	Title string
}

// Rewriter maps link targets to their post-rename form.
type Rewriter struct {
	pages rename.Map
	exts  []string
}

// New returns a Rewriter over the completed map. exts lists the page file
// extensions a link target may carry.
func New(pages rename.Map, exts []string) *Rewriter {
	return &Rewriter{pages: pages, exts: exts}
}

// Resolve rewrites target, a link found in the page at pageRel
// (slash-separated, tree-relative). The target resolves relative to the
// page's original directory; only the basename substitutes, since
// directories never change. The second return is false when the target is
// not a known page, leaving dangling and external targets untouched.
func (r *Rewriter) Resolve(pageRel, target string) (Result, bool) {
	lookup := target
	hadExt := false
	for _, ext := range r.exts {
		if strings.HasSuffix(target, ext) {
			lookup = strings.TrimSuffix(target, ext)
			hadExt = true
			break
		}
	}

	entry, ok := r.pages[path.Join(path.Dir(pageRel), lookup)]
	if !ok {
		return Result{}, false
	}

	newBase := path.Base(entry.NewPath)
	if !hadExt {
		newBase = strings.TrimSuffix(newBase, path.Ext(newBase))
	}

	dir := ""
	if i := strings.LastIndex(target, "/"); i >= 0 {
		dir = target[:i+1]
	}
	return Result{Target: dir + newBase, Title: entry.Title}, true
}
