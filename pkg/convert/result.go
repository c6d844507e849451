package convert

import (
	"errors"

	"github.com/yaklabco/zim2obsidian/pkg/diff"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrPagesFailed indicates that one or more pages could not be
	// converted. The run itself completed; per-page errors are recorded
	// on the outcomes.
	ErrPagesFailed = errors.New("one or more pages failed")

	// ErrPageModified indicates a page changed on disk between the scan
	// pass and its rewrite. The stale conversion is discarded.
	ErrPageModified = errors.New("page modified since scan")
)

// PageOutcome records what happened to a single page.
type PageOutcome struct {
	// Path is the page's original tree-relative path.
	Path string

	// NewPath is the path the page occupies after the run. Equal to Path
	// when the page keeps its name.
	NewPath string

	// Title is the extracted title text, empty when the page has none.
	Title string

	// Renamed reports whether NewPath differs from Path. In a dry run it
	// reports the planned rename.
	Renamed bool

	// Written reports whether the page's content was written to disk.
	Written bool

	// LinksRewritten is the number of link targets that changed.
	LinksRewritten int

	// Dangling lists link targets that resolved to no known page. Their
	// links were converted syntactically with the target kept.
	Dangling []string

	// Diff is the dry-run preview of the content change. Nil outside dry
	// runs and for pages whose content is already converted.
	Diff *diff.Diff

	// Error is set if the page could not be processed. The page's file is
	// left untouched.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// PagesScanned is the total number of pages found during discovery.
	PagesScanned int

	// PagesConverted is the number of pages that changed, or would change
	// in a dry run.
	PagesConverted int

	// PagesRenamed is the number of pages whose filename changed.
	PagesRenamed int

	// LinksRewritten is the total number of link targets rewritten.
	LinksRewritten int

	// DanglingLinks is the total number of link targets that resolved to
	// no known page.
	DanglingLinks int

	// Untitled is the number of pages with no detectable title.
	Untitled int

	// PagesFailed is the number of pages that encountered errors.
	PagesFailed int
}

// Result is the overall outcome of a run.
type Result struct {
	// Pages contains the outcome for each scanned page, ordered by
	// original path.
	Pages []PageOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any page failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.PagesFailed > 0
}

// accumulate updates the result with a page outcome.
func (r *Result) accumulate(outcome PageOutcome) {
	r.Pages = append(r.Pages, outcome)

	if outcome.Error != nil {
		r.Stats.PagesFailed++
		return
	}

	if outcome.Written || outcome.Renamed || outcome.Diff != nil {
		r.Stats.PagesConverted++
	}

	if outcome.Renamed {
		r.Stats.PagesRenamed++
	}

	r.Stats.LinksRewritten += outcome.LinksRewritten
	r.Stats.DanglingLinks += len(outcome.Dangling)
}
