package rename

import (
	"fmt"
	"path"
	"strings"
)

// Entry records the planned identity of one page.
type Entry struct {
	// NewPath is the tree-relative path the page will occupy after the
	// run, extension included. It equals the original path when the page
	// is not renamed.
	NewPath string

	// Title is the text of the page's extracted first heading, empty when
	// the page has none.
	Title string

	// Renamed reports whether NewPath differs from the original path.
	Renamed bool
}

// Map is the total mapping from original tree-relative page paths, extension
// stripped, to planned entries. Built once, then read-only.
type Map map[string]Entry

// Planner assigns new filenames to pages one directory at a time. Within a
// directory names are unique; numeric suffixes resolve collisions in
// planning order. Name comparison is case-insensitive so the plan holds on
// case-preserving filesystems.
type Planner struct {
	keepNames bool
	taken     map[string]map[string]struct{}
	pages     Map
}

// NewPlanner returns a Planner. With keepNames set no page changes its
// name; the map still records titles so display text can be resolved.
func NewPlanner(keepNames bool) *Planner {
	return &Planner{
		keepNames: keepNames,
		taken:     make(map[string]map[string]struct{}),
		pages:     make(Map),
	}
}

// SeedDir marks names as occupied in dir before its pages are planned.
// Seeding every existing sibling, pages and strangers alike, keeps planned
// names off files the run does not own. Original names stay occupied for the
// whole plan: sources are removed only after their replacements are written,
// so both names exist on disk mid-run.
func (p *Planner) SeedDir(dir string, names []string) {
	set := p.dirNames(dir)
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
}

// Plan decides the new identity of the page at relPath (slash-separated,
// tree-relative) given its extracted title. The page keeps its own
// extension. Pages without a usable title keep their name. Each page is
// planned exactly once; a page whose name already matches its title is not
// renamed, so a second run over converted output plans no changes.
func (p *Planner) Plan(relPath, title string) Entry {
	dir, base := path.Split(relPath)
	ext := path.Ext(base)
	key := strings.TrimSuffix(relPath, ext)

	entry := Entry{NewPath: relPath, Title: title}
	stem := ""
	if !p.keepNames && title != "" {
		stem = Sanitize(title)
	}
	if stem == "" {
		p.pages[key] = entry
		return entry
	}

	set := p.dirNames(dir)
	newBase := stem + ext
	for n := 2; p.occupied(set, newBase, base); n++ {
		newBase = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
	set[strings.ToLower(newBase)] = struct{}{}

	if newBase != base {
		entry.NewPath = dir + newBase
		entry.Renamed = true
	}
	p.pages[key] = entry
	return entry
}

// Map returns the completed rename map.
func (p *Planner) Map() Map {
	return p.pages
}

// occupied reports whether newBase is taken by a sibling other than the page
// itself. A page renaming to its own name, in any letter case, is never a
// collision.
func (p *Planner) occupied(set map[string]struct{}, newBase, ownBase string) bool {
	lower := strings.ToLower(newBase)
	if lower == strings.ToLower(ownBase) {
		return false
	}
	_, ok := set[lower]
	return ok
}

func (p *Planner) dirNames(dir string) map[string]struct{} {
	set, ok := p.taken[dir]
	if !ok {
		set = make(map[string]struct{})
		p.taken[dir] = set
	}
	return set
}
