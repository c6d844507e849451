package zim

import (
	"net/url"
	"regexp"
	"strings"
)

// Link is a single page reference found on a line.
type Link struct {
	// Target is the link address with the "./" prefix stripped and
	// percent-encoding decoded. External URLs keep their raw form.
	Target string

	// Display is the visible text. Empty means the target doubles as the
	// display text.
	Display string

	// Wiki records whether the source used wiki syntax.
	Wiki bool
}

// LinkFunc rewrites a parsed link. Returning the input unchanged keeps the
// link as parsed.
type LinkFunc func(Link) Link

// Segment is a run of plain text or exactly one link.
type Segment struct {
	Text string
	Link *Link
}

// urlSchemeRx matches a URL scheme prefix per RFC 3986.
//
//nolint:gochecknoglobals // Compiled once.
var urlSchemeRx = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// hasURLScheme reports whether the address points outside the notebook.
func hasURLScheme(addr string) bool {
	return urlSchemeRx.MatchString(addr)
}

// cleanTarget normalizes a link address: the exporter's "./" prefix goes, and
// percent-encoding is decoded. Addresses that fail to decode stay raw.
func cleanTarget(addr string) string {
	addr = strings.TrimPrefix(addr, "./")
	if decoded, err := url.PathUnescape(addr); err == nil {
		return decoded
	}
	return addr
}

// parseLinks splits a line into text and link segments. Malformed link
// openings are kept as text. The scan is byte-oriented; link delimiters are
// all ASCII, so multi-byte runes pass through untouched inside text runs.
func parseLinks(line string) []Segment {
	var segs []Segment
	var text strings.Builder

	flushText := func() {
		if text.Len() > 0 {
			segs = append(segs, Segment{Text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(line) {
		if line[i] != '[' {
			text.WriteByte(line[i])
			i++
			continue
		}
		seg, next, ok := parseLinkAt(line, i)
		if !ok {
			text.WriteByte(line[i])
			i++
			continue
		}
		flushText()
		segs = append(segs, seg)
		i = next
	}
	flushText()
	return segs
}

// parseLinkAt parses the link starting at the "[" at position i. It returns
// the parsed segment and the position after the link. ok is false when the
// opening does not form a complete link on this line.
func parseLinkAt(line string, i int) (Segment, int, bool) {
	if strings.HasPrefix(line[i:], "[[") {
		return parseWikiAt(line, i)
	}
	return parseMarkdownAt(line, i)
}

// parseWikiAt parses "[[target]]" or "[[target|display]]" starting at i.
func parseWikiAt(line string, i int) (Segment, int, bool) {
	inner := line[i+2:]
	end := strings.Index(inner, "]]")
	if end < 0 {
		return Segment{}, 0, false
	}
	body := inner[:end]
	target, display := body, ""
	if pipe := strings.Index(body, "|"); pipe >= 0 {
		target, display = body[:pipe], body[pipe+1:]
	}
	link := Link{Target: cleanTarget(target), Display: display, Wiki: true}
	return Segment{Link: &link}, i + 2 + end + 2, true
}

// parseMarkdownAt parses "[display](address)" starting at i. External URLs
// come back as verbatim text so their addresses survive untouched.
func parseMarkdownAt(line string, i int) (Segment, int, bool) {
	inner := line[i+1:]
	descEnd := strings.Index(inner, "]")
	if descEnd < 0 {
		return Segment{}, 0, false
	}
	display := inner[:descEnd]
	rest := inner[descEnd+1:]
	if !strings.HasPrefix(rest, "(") {
		return Segment{}, 0, false
	}
	end := strings.Index(rest, ")")
	if end < 0 {
		return Segment{}, 0, false
	}
	addr := rest[1:end]
	next := i + 1 + descEnd + 1 + end + 1

	if hasURLScheme(addr) {
		return Segment{Text: line[i:next]}, next, true
	}
	if addr == "" {
		// Zim exports notebook-internal links with an empty address;
		// the display text carries the page path in colon notation.
		target := cleanTarget(strings.ReplaceAll(display, ":", "/"))
		return Segment{Link: &Link{Target: target, Wiki: false}}, next, true
	}
	link := Link{Target: cleanTarget(addr), Display: display, Wiki: false}
	return Segment{Link: &link}, next, true
}

// renderWiki renders a link in wiki syntax, collapsing a display text that
// repeats the target.
func renderWiki(l Link) string {
	if l.Display == "" || l.Display == l.Target {
		return "[[" + l.Target + "]]"
	}
	return "[[" + l.Target + "|" + l.Display + "]]"
}

// renderMarkdown renders a link in Markdown syntax with the address
// percent-encoded.
func renderMarkdown(l Link) string {
	display := l.Display
	if display == "" {
		display = l.Target
	}
	u := url.URL{Path: l.Target}
	return "[" + display + "](" + u.EscapedPath() + ")"
}
