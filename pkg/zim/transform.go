package zim

import "strings"

// Options configure a single Transform run.
type Options struct {
	// Backticks preserves pre-existing backtick markup: tab-indented lines
	// pass through without added fence delimiters, and inline code spans
	// are excluded from rewriting.
	Backticks bool

	// PreserveAt keeps @tags in their source form.
	PreserveAt bool

	// MDLinks keeps Markdown link syntax. The default converts Markdown
	// links to wiki references, one per output line.
	MDLinks bool

	// DetectLanguage, when set, names the language for fences opened
	// around verbatim runs. An empty result leaves the fence bare.
	DetectLanguage func(content []byte) string

	// Links, when set, rewrites every parsed page link before rendering.
	// External URLs are never passed to it.
	Links LinkFunc
}

// Transform converts one page body from Zim's exported Markdown dialect to
// Obsidian's. The input is the page's lines without trailing newlines; the
// result is the converted lines in order.
func Transform(lines []string, opts Options) []string {
	t := transformer{opts: opts, out: make([]string, 0, len(lines))}
	for _, line := range lines {
		t.feed(line)
	}
	return t.finish()
}

// transformer is the buffer-one-line state machine behind Transform. One
// line of lookahead covers Setext underlines; fenced and verbatim modes
// keep code byte-identical.
type transformer struct {
	opts Options
	out  []string

	// buf holds the previous line, already inline-rewritten, until the
	// current line decides whether it becomes a heading.
	buf      string
	buffered bool

	// fenced is set between fence delimiter lines.
	fenced bool

	// verbatim collects the current tab-indented run; nil outside runs.
	verbatim []string
}

func (t *transformer) feed(line string) {
	if t.fenced {
		t.out = append(t.out, line)
		if isFenceToggle(line) {
			t.fenced = false
		}
		return
	}
	if t.verbatim != nil {
		if isTabIndented(line) {
			t.verbatim = append(t.verbatim, line)
			return
		}
		t.flushVerbatim()
	}

	switch {
	case isUnderline(line, '='):
		if t.promote("# ") {
			return
		}
		t.push(t.rewriteLine(line))
	case isUnderline(line, '-'):
		if t.promote("## ") {
			return
		}
		if isRule(line) {
			t.push("---")
			return
		}
		t.push(t.rewriteLine(line))
	case isRule(line):
		t.push("---")
	case isFenceToggle(line):
		t.flush()
		t.out = append(t.out, line)
		t.fenced = true
	case !t.opts.Backticks && isTabIndented(line):
		t.flush()
		t.verbatim = []string{line}
	default:
		t.push(t.rewriteLine(line))
	}
}

// promote turns the buffered line into an Atx heading and swallows the
// underline. An empty buffer means the underline has no heading text; it is
// then kept as a plain line.
func (t *transformer) promote(prefix string) bool {
	if !t.buffered || strings.TrimSpace(t.buf) == "" {
		return false
	}
	t.buf = prefix + t.buf
	return true
}

// push emits the buffered line and stores the next candidate.
func (t *transformer) push(line string) {
	t.flush()
	t.buf = line
	t.buffered = true
}

// flush renders the buffered line, links last, and appends the result.
func (t *transformer) flush() {
	if !t.buffered {
		return
	}
	t.out = append(t.out, t.renderLinks(t.buf)...)
	t.buf = ""
	t.buffered = false
}

// flushVerbatim wraps the collected tab-indented run in a fenced block. The
// fence language comes from the run's content with the indent tabs removed.
func (t *transformer) flushVerbatim() {
	fence := fenceMarker
	if t.opts.DetectLanguage != nil {
		stripped := make([]string, len(t.verbatim))
		for i, line := range t.verbatim {
			stripped[i] = strings.TrimPrefix(line, "\t")
		}
		fence += t.opts.DetectLanguage([]byte(strings.Join(stripped, "\n")))
	}
	t.out = append(t.out, fence)
	t.out = append(t.out, t.verbatim...)
	t.out = append(t.out, fenceMarker)
	t.verbatim = nil
}

// finish closes an open verbatim run and drains the buffer.
func (t *transformer) finish() []string {
	if t.verbatim != nil {
		t.flushVerbatim()
	}
	t.flush()
	return t.out
}

// rewriteLine applies the single-line rewrites, excluding inline code spans
// when backtick markup is preserved.
func (t *transformer) rewriteLine(line string) string {
	if t.opts.Backticks && strings.Contains(line, inlineCodeMarker) {
		chunks := strings.Split(line, inlineCodeMarker)
		for i, chunk := range chunks {
			if i%2 == 0 {
				chunks[i] = rewriteInline(chunk, t.opts.PreserveAt)
			}
		}
		return strings.Join(chunks, inlineCodeMarker)
	}
	return rewriteInline(line, t.opts.PreserveAt)
}

// renderLinks parses the line's links, passes each through the rewrite hook,
// and renders the result. Without links the line comes back untouched.
// Converting a Markdown link to a wiki reference splits the source line so
// that every link lands on its own output line; text between links keeps its
// bytes, whitespace-only runs are dropped. Lines whose links are already wiki
// references are rebuilt in place.
func (t *transformer) renderLinks(line string) []string {
	if !strings.Contains(line, "[") {
		return []string{line}
	}
	segs := parseLinks(line)
	hasLink, hasMarkdown := false, false
	for _, seg := range segs {
		if seg.Link == nil {
			continue
		}
		hasLink = true
		if !seg.Link.Wiki {
			hasMarkdown = true
		}
		t.resolveLink(seg.Link)
	}
	if !hasLink {
		return []string{line}
	}

	if t.opts.MDLinks || !hasMarkdown {
		var b strings.Builder
		for _, seg := range segs {
			switch {
			case seg.Link == nil:
				b.WriteString(seg.Text)
			case seg.Link.Wiki:
				b.WriteString(renderWiki(*seg.Link))
			default:
				b.WriteString(renderMarkdown(*seg.Link))
			}
		}
		return []string{b.String()}
	}

	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if seg.Link == nil {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			out = append(out, seg.Text)
			continue
		}
		out = append(out, renderWiki(*seg.Link))
	}
	return out
}

// resolveLink applies the rewrite hook. Links pointing outside the notebook
// stay as parsed.
func (t *transformer) resolveLink(l *Link) {
	if t.opts.Links == nil || l.Target == "" || hasURLScheme(l.Target) {
		return
	}
	*l = t.opts.Links(*l)
}
